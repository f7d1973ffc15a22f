// Package render projects an invoice into one of three fixed layouts:
// full-page (A4), narrow-thermal (58mm) and medium-thermal (80mm).
// Rendering is a pure function of its input; the totals are computed
// once and shared by every projection, so the three layouts always
// agree on subtotal, tax and total to the character.
package render

import (
	"github.com/jaberco/invoicing-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// DefaultFooter is printed at the bottom of every layout.
const DefaultFooter = "Thank you for shopping with us!"

// EmptyStateMessage replaces the item table when no items exist.
const EmptyStateMessage = "No items added yet"

// Company is the billing party block of the rendered invoice.
type Company struct {
	Name    string
	Phone   string
	Address string
	Website string
	TaxRate decimal.Decimal
}

// Item is one line item to render. Inputs are assumed validated.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Input is everything a render needs. Same input, same output.
type Input struct {
	Company       Company
	Items         []Item
	InvoiceNumber string
	// Date is the preformatted render date, e.g. "2026-08-31".
	Date string
	// PrintMode suppresses interactive affordances (the per-item remove
	// control of the full-page layout).
	PrintMode bool
}

// RenderedItem is one projected line item with display-ready amounts.
type RenderedItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
	// Removable marks the item as carrying a remove affordance in the
	// interactive full-page editor.
	Removable bool `json:"removable"`
}

// Document is the presentational projection consumed by the preview API,
// the text/HTML writers, the PDF exporter and the thermal formatter.
type Document struct {
	Layout        Layout         `json:"layout"`
	CompanyName   string         `json:"company_name"`
	Address       string         `json:"address,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Website       string         `json:"website,omitempty"`
	InvoiceNumber string         `json:"invoice_number"`
	Date          string         `json:"date"`
	Items         []RenderedItem `json:"items"`
	Empty         bool           `json:"empty"`
	TaxRate       string         `json:"tax_rate"`
	Subtotal      string         `json:"subtotal"`
	Tax           string         `json:"tax"`
	Total         string         `json:"total"`
	Footer        string         `json:"footer"`
	PrintMode     bool           `json:"print_mode"`
}

// Render projects the input into the given layout. Pure and stateless.
func Render(in Input, layout Layout) Document {
	lines := make([]money.Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = money.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals := money.ComputeTotals(lines, in.Company.TaxRate)

	removable := layout == LayoutFullPage && !in.PrintMode

	items := make([]RenderedItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = RenderedItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: money.Format(it.UnitPrice),
			Total:     money.Format(money.LineTotal(it.Quantity, it.UnitPrice)),
			Removable: removable,
		}
	}

	return Document{
		Layout:        layout,
		CompanyName:   in.Company.Name,
		Address:       in.Company.Address,
		Phone:         in.Company.Phone,
		Website:       in.Company.Website,
		InvoiceNumber: in.InvoiceNumber,
		Date:          in.Date,
		Items:         items,
		Empty:         len(in.Items) == 0,
		TaxRate:       in.Company.TaxRate.String(),
		Subtotal:      money.Format(totals.Subtotal),
		Tax:           money.Format(totals.Tax),
		Total:         money.Format(totals.Total),
		Footer:        DefaultFooter,
		PrintMode:     in.PrintMode,
	}
}
