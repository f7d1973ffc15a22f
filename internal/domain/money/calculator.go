// Package money computes invoice totals on exact decimal arithmetic.
// Monetary values never touch binary floats; accumulation and rounding
// happen on shopspring decimals so many small line items cannot drift.
package money

import "github.com/shopspring/decimal"

// DefaultTaxRate is applied when a company omits its tax rate.
var DefaultTaxRate = decimal.New(13, 0)

// Line is the minimal shape the calculator needs from a line item.
// Inputs are assumed validated upstream: Quantity >= 1, UnitPrice >= 0.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals holds the three derived invoice amounts.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal returns quantity x unit price for a single line.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.New(int64(quantity), 0))
}

// ComputeTotals derives subtotal, tax and total from the given lines and
// a tax rate expressed in percent (0..100). The tax amount is rounded to
// two decimal places; the subtotal is an exact sum of the line totals.
func ComputeTotals(lines []Line, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Quantity, l.UnitPrice))
	}

	tax := subtotal.Mul(taxRatePercent).Div(decimal.New(100, 0)).Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Format renders a monetary amount with exactly two decimal places,
// e.g. "0.00" or "44.98". All presentation surfaces use this helper so
// the three invoice layouts agree to the character.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
