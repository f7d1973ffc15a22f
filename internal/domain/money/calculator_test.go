package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "19.98", Format(LineTotal(2, dec("9.99"))))
	assert.Equal(t, "25.00", Format(LineTotal(1, dec("25.00"))))
	assert.Equal(t, "0.00", Format(LineTotal(3, dec("0"))))
}

func TestComputeTotals(t *testing.T) {
	t.Run("two items at 13 percent", func(t *testing.T) {
		totals := ComputeTotals([]Line{
			{Quantity: 2, UnitPrice: dec("9.99")},
			{Quantity: 1, UnitPrice: dec("25.00")},
		}, dec("13"))

		assert.Equal(t, "44.98", Format(totals.Subtotal))
		assert.Equal(t, "5.85", Format(totals.Tax))
		assert.Equal(t, "50.83", Format(totals.Total))
	})

	t.Run("no items", func(t *testing.T) {
		totals := ComputeTotals(nil, dec("13"))

		assert.Equal(t, "0.00", Format(totals.Subtotal))
		assert.Equal(t, "0.00", Format(totals.Tax))
		assert.Equal(t, "0.00", Format(totals.Total))
	})

	t.Run("zero tax rate", func(t *testing.T) {
		totals := ComputeTotals([]Line{
			{Quantity: 4, UnitPrice: dec("2.50")},
		}, decimal.Zero)

		assert.Equal(t, "10.00", Format(totals.Subtotal))
		assert.Equal(t, "0.00", Format(totals.Tax))
		assert.Equal(t, "10.00", Format(totals.Total))
	})

	t.Run("tax is rounded to cents", func(t *testing.T) {
		// 0.33 * 13% = 0.0429, rounds to 0.04
		totals := ComputeTotals([]Line{
			{Quantity: 1, UnitPrice: dec("0.33")},
		}, dec("13"))

		assert.Equal(t, "0.33", Format(totals.Subtotal))
		assert.Equal(t, "0.04", Format(totals.Tax))
		assert.Equal(t, "0.37", Format(totals.Total))
	})

	t.Run("no drift accumulating many small lines", func(t *testing.T) {
		lines := make([]Line, 1000)
		for i := range lines {
			lines[i] = Line{Quantity: 1, UnitPrice: dec("0.10")}
		}
		totals := ComputeTotals(lines, dec("13"))

		assert.Equal(t, "100.00", Format(totals.Subtotal))
		assert.Equal(t, "13.00", Format(totals.Tax))
		assert.Equal(t, "113.00", Format(totals.Total))
	})

	t.Run("line order does not change totals", func(t *testing.T) {
		a := ComputeTotals([]Line{
			{Quantity: 3, UnitPrice: dec("1.11")},
			{Quantity: 2, UnitPrice: dec("9.99")},
			{Quantity: 1, UnitPrice: dec("0.01")},
		}, dec("13"))
		b := ComputeTotals([]Line{
			{Quantity: 1, UnitPrice: dec("0.01")},
			{Quantity: 2, UnitPrice: dec("9.99")},
			{Quantity: 3, UnitPrice: dec("1.11")},
		}, dec("13"))

		assert.True(t, a.Subtotal.Equal(b.Subtotal))
		assert.True(t, a.Tax.Equal(b.Tax))
		assert.True(t, a.Total.Equal(b.Total))
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.00", Format(decimal.Zero))
	assert.Equal(t, "5.85", Format(dec("5.85")))
	assert.Equal(t, "5.80", Format(dec("5.8")))
	assert.Equal(t, "1000.00", Format(dec("1000")))
}
