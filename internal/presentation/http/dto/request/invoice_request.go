package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItemPayload represents one line item on the wire. Amounts are
// decimal strings; the server recomputes all totals.
type InvoiceItemPayload struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CompanyPayload represents an inline billing-party snapshot
type CompanyPayload struct {
	Name    string           `json:"name"`
	Phone   string           `json:"phone"`
	Address string           `json:"address"`
	Website string           `json:"website"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
}

// CreateInvoiceRequest represents the create invoice request body.
// An empty invoice_number lets the numbering policy assign one.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	CompanyID     *uuid.UUID           `json:"company_id"`
	Company       *CompanyPayload      `json:"company"`
	Status        string               `json:"status"`
	Items         []InvoiceItemPayload `json:"items"`
}

// UpdateInvoiceRequest represents a partial invoice update
type UpdateInvoiceRequest struct {
	Status    *string    `json:"status"`
	CompanyID *uuid.UUID `json:"company_id"`
}

// PreviewInvoiceRequest represents a live-preview request for an
// unsaved invoice
type PreviewInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	Company       *CompanyPayload      `json:"company"`
	Items         []InvoiceItemPayload `json:"items"`
	Layout        string               `json:"layout"`
	PrintMode     bool                 `json:"print_mode"`
}

// AddInvoiceItemRequest represents the add line item request body
type AddInvoiceItemRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
