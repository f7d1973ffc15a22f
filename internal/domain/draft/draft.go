// Package draft holds the mutable working state of one not-yet-persisted
// invoice during editing. It is the validation boundary for user-entered
// items: the calculator and renderers below it assume clean input.
package draft

import (
	"strings"

	"github.com/jaberco/invoicing-api/internal/domain/money"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Company is the live-edited billing party snapshot.
type Company struct {
	Name    string
	Phone   string
	Address string
	Website string
	TaxRate decimal.Decimal
}

// Item is a validated line item with its derived total.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Payload is the persistable projection of a draft, in the shape the
// invoice store accepts.
type Payload struct {
	Company Company
	Items   []Item
	Totals  money.Totals
	Status  string
}

// Draft is the in-memory document being edited. It is mutated by
// discrete user actions from a single session, so it needs no locking.
type Draft struct {
	company Company
	items   []Item
}

// New creates an empty draft with the default tax rate applied.
func New() *Draft {
	return &Draft{
		company: Company{TaxRate: money.DefaultTaxRate},
	}
}

// ValidateItem checks the line item constraints and returns field-level
// errors, or nil when the item is well formed.
func ValidateItem(name string, quantity int, unitPrice decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "Item name is required"})
	}
	if quantity < 1 {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "Quantity must be at least 1"})
	}
	if unitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "Unit price cannot be negative"})
	}
	return errs
}

// ValidateTaxRate checks that a tax rate percentage lies in [0, 100].
func ValidateTaxRate(rate decimal.Decimal) []apperror.FieldError {
	if rate.IsNegative() || rate.GreaterThan(decimal.New(100, 0)) {
		return []apperror.FieldError{{Field: "tax_rate", Message: "Tax rate must be between 0 and 100"}}
	}
	return nil
}

// SetCompany replaces the company snapshot. Totals pick up the new tax
// rate on the next Totals call since they are always recomputed. A zero
// tax rate is a valid explicit rate, not a reset; use ClearCompany to
// drop the snapshot.
func (d *Draft) SetCompany(c Company) error {
	if errs := ValidateTaxRate(c.TaxRate); errs != nil {
		return apperror.NewValidationError(errs)
	}
	d.company = c
	return nil
}

// ClearCompany drops the company snapshot and restores the default rate.
func (d *Draft) ClearCompany() {
	d.company = Company{TaxRate: money.DefaultTaxRate}
}

// Company returns the current company snapshot.
func (d *Draft) Company() Company {
	return d.company
}

// AddItem validates and appends a line item, computing its total.
func (d *Draft) AddItem(name string, quantity int, unitPrice decimal.Decimal) error {
	if errs := ValidateItem(name, quantity, unitPrice); errs != nil {
		return apperror.NewValidationError(errs)
	}
	d.items = append(d.items, Item{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     money.LineTotal(quantity, unitPrice),
	})
	return nil
}

// RemoveItem removes the item at the given display position.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.items) {
		return apperror.NewBadRequestError("Item index out of range")
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	return nil
}

// Items returns a copy of the ordered line items.
func (d *Draft) Items() []Item {
	out := make([]Item, len(d.items))
	copy(out, d.items)
	return out
}

// Totals recomputes subtotal, tax and total from the current items and
// tax rate.
func (d *Draft) Totals() money.Totals {
	lines := make([]money.Line, len(d.items))
	for i, it := range d.items {
		lines[i] = money.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return money.ComputeTotals(lines, d.company.TaxRate)
}

// ToPayload serializes the draft into the shape the invoice store
// accepts, with a fresh "saved" status.
func (d *Draft) ToPayload() Payload {
	return Payload{
		Company: d.company,
		Items:   d.Items(),
		Totals:  d.Totals(),
		Status:  "saved",
	}
}

// Clear resets the draft to an empty company and item list. Idempotent.
func (d *Draft) Clear() {
	d.company = Company{TaxRate: money.DefaultTaxRate}
	d.items = nil
}
