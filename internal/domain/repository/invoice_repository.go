package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/jaberco/invoicing-api/pkg/pagination"
)

// InvoiceSortField names the columns listInvoices can sort on.
const (
	SortByInvoiceNumber = "invoice_number"
	SortByTotal         = "total"
	SortByStatus        = "status"
	SortByCreatedAt     = "created_at"
)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches invoice number or company name, case-insensitive substring.
	Search    string
	Status    *enum.InvoiceStatus
	SortBy    string
	SortOrder string
}

// InvoiceRepository defines the interface for invoice data operations.
// Implementations guarantee that Create persists the invoice, its items
// and an optional inline company atomically, and that duplicate invoice
// numbers surface as a conflict error.
type InvoiceRepository interface {
	// Create persists company (when non-nil), invoice and items in one
	// transaction. The invoice's CompanyID is pointed at the created
	// company before insertion.
	Create(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error)
	// List returns invoices with items and company preloaded, sorted per
	// params with a stable id-ascending tie-break.
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	// Delete removes the invoice and cascades to its items. Returns the
	// number of invoices deleted (0 when the id is unknown).
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// MaxInvoiceSequence reports the highest INV-<digits> suffix in the
	// stored set; it backs the sequential numbering policy.
	MaxInvoiceSequence(ctx context.Context) (int64, error)
}

// InvoiceItemRepository defines the interface for line item operations
type InvoiceItemRepository interface {
	Create(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceItem, error)
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error)
	// Delete removes one line item. Returns the number of rows deleted.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
