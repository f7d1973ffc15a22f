package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice represents a persisted invoice with its computed totals.
// Subtotal, Tax and Total are always derived from the items and the
// company tax rate; they are never edited independently.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber string             `gorm:"size:100;unique;not null" json:"invoice_number"`
	CompanyID     *uuid.UUID         `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Subtotal      decimal.Decimal    `gorm:"type:numeric(10,2);not null;default:0.00" json:"subtotal"`
	Tax           decimal.Decimal    `gorm:"type:numeric(10,2);not null;default:0.00" json:"tax"`
	Total         decimal.Decimal    `gorm:"type:numeric(10,2);not null;default:0.00" json:"total"`
	Status        enum.InvoiceStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Company *Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item owned by one invoice.
// Total is derived as quantity x unit price when the item is created.
// Position fixes the display order; items render in the order they were
// added regardless of how the backend returns rows.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position  int             `gorm:"not null;default:0" json:"position"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
