package draft

import (
	"testing"

	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		assert.Nil(t, ValidateItem("Widget", 2, dec("9.99")))
	})

	t.Run("blank name", func(t *testing.T) {
		errs := ValidateItem("   ", 1, dec("1.00"))
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
	})

	t.Run("zero quantity", func(t *testing.T) {
		errs := ValidateItem("Widget", 0, dec("1.00"))
		require.Len(t, errs, 1)
		assert.Equal(t, "quantity", errs[0].Field)
	})

	t.Run("negative price", func(t *testing.T) {
		errs := ValidateItem("Widget", 1, dec("-0.01"))
		require.Len(t, errs, 1)
		assert.Equal(t, "unit_price", errs[0].Field)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		assert.Nil(t, ValidateItem("Freebie", 1, decimal.Zero))
	})

	t.Run("all fields invalid reports every error", func(t *testing.T) {
		errs := ValidateItem("", 0, dec("-1"))
		assert.Len(t, errs, 3)
	})
}

func TestValidateTaxRate(t *testing.T) {
	assert.Nil(t, ValidateTaxRate(decimal.Zero))
	assert.Nil(t, ValidateTaxRate(dec("13")))
	assert.Nil(t, ValidateTaxRate(dec("100")))
	assert.NotNil(t, ValidateTaxRate(dec("-1")))
	assert.NotNil(t, ValidateTaxRate(dec("100.01")))
}

func TestDraftItems(t *testing.T) {
	t.Run("add computes the line total", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Widget", 2, dec("9.99")))

		items := d.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "19.98", items[0].Total.StringFixed(2))
	})

	t.Run("add rejects invalid items", func(t *testing.T) {
		d := New()
		err := d.AddItem("", 0, dec("1.00"))
		require.Error(t, err)
		assert.Len(t, apperror.GetAppError(err).Errors, 2)
		assert.Empty(t, d.Items())
	})

	t.Run("remove by position", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("First", 1, dec("1.00")))
		require.NoError(t, d.AddItem("Second", 1, dec("2.00")))

		require.NoError(t, d.RemoveItem(0))

		items := d.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Second", items[0].Name)
	})

	t.Run("remove out of range", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Only", 1, dec("1.00")))

		assert.Error(t, d.RemoveItem(-1))
		assert.Error(t, d.RemoveItem(1))
	})

	t.Run("items returns a copy", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Widget", 1, dec("1.00")))

		items := d.Items()
		items[0].Name = "Mutated"

		assert.Equal(t, "Widget", d.Items()[0].Name)
	})
}

func TestDraftTotals(t *testing.T) {
	t.Run("default tax rate applies", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Widget", 2, dec("9.99")))
		require.NoError(t, d.AddItem("Gadget", 1, dec("25.00")))

		totals := d.Totals()
		assert.Equal(t, "44.98", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "5.85", totals.Tax.StringFixed(2))
		assert.Equal(t, "50.83", totals.Total.StringFixed(2))
	})

	t.Run("changing the company rate recomputes totals", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Widget", 1, dec("100.00")))

		require.NoError(t, d.SetCompany(Company{Name: "Acme", TaxRate: dec("5")}))

		totals := d.Totals()
		assert.Equal(t, "5.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "105.00", totals.Total.StringFixed(2))
	})

	t.Run("invalid rate is rejected and keeps the old company", func(t *testing.T) {
		d := New()
		require.Error(t, d.SetCompany(Company{Name: "Acme", TaxRate: dec("150")}))
		assert.Equal(t, "13", d.Company().TaxRate.String())
	})

	t.Run("an explicit zero rate is kept", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Widget", 1, dec("100.00")))
		require.NoError(t, d.SetCompany(Company{TaxRate: decimal.Zero}))

		totals := d.Totals()
		assert.Equal(t, "0.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "100.00", totals.Total.StringFixed(2))
	})

	t.Run("clearing the company restores the default rate", func(t *testing.T) {
		d := New()
		require.NoError(t, d.SetCompany(Company{Name: "Acme", TaxRate: dec("5")}))
		d.ClearCompany()

		assert.Equal(t, "13", d.Company().TaxRate.String())
	})
}

func TestDraftLifecycle(t *testing.T) {
	t.Run("payload carries the saved status", func(t *testing.T) {
		d := New()
		require.NoError(t, d.AddItem("Widget", 2, dec("9.99")))

		p := d.ToPayload()
		assert.Equal(t, "saved", p.Status)
		assert.Len(t, p.Items, 1)
		assert.Equal(t, "22.58", p.Totals.Total.StringFixed(2))
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		d := New()
		require.NoError(t, d.SetCompany(Company{Name: "Acme", TaxRate: dec("5")}))
		require.NoError(t, d.AddItem("Widget", 1, dec("1.00")))

		d.Clear()
		d.Clear()

		assert.Empty(t, d.Items())
		assert.Equal(t, "13", d.Company().TaxRate.String())
		assert.Equal(t, "0.00", d.Totals().Total.StringFixed(2))
	})
}
