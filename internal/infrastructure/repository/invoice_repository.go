package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/jaberco/invoicing-api/internal/domain/numbering"
	domainRepo "github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem, company *entity.Company) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if company != nil {
			if err := tx.Create(company).Error; err != nil {
				return err
			}
			invoice.CompanyID = &company.ID
		}

		if err := tx.Create(invoice).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError(fmt.Sprintf("Invoice number %s already exists", invoice.InvoiceNumber))
	}
	return err
}

// preloadItems orders the Items association by position so display
// order never depends on SQL row order.
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("invoice_items.position ASC, invoice_items.id ASC")
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Items", preloadItems).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Items", preloadItems).
		First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// sortColumns whitelists sortable columns; anything else falls back to
// created_at so user input never reaches the ORDER BY clause raw.
var sortColumns = map[string]string{
	domainRepo.SortByInvoiceNumber: "invoices.invoice_number",
	domainRepo.SortByTotal:         "invoices.total",
	domainRepo.SortByStatus:        "invoices.status",
	domainRepo.SortByCreatedAt:     "invoices.created_at",
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Joins("LEFT JOIN companies ON companies.id = invoices.company_id")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("invoices.invoice_number ILIKE ? OR companies.name ILIKE ?", pattern, pattern)
	}

	if params.Status != nil {
		query = query.Where("invoices.status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "invoices.created_at"
	}
	direction := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		direction = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Company").
		Preload("Items", preloadItems).
		// Stable id tie-break keeps equal keys in a deterministic order.
		Order(column + " " + direction + ", invoices.id ASC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Omit("Items", "Company").Save(invoice).Error
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.InvoiceItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Invoice{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *invoiceRepository) MaxInvoiceSequence(ctx context.Context) (int64, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return 0, err
	}

	var max int64
	for _, n := range numbers {
		if seq, ok := numbering.Sequence(n); ok && seq > max {
			max = seq
		}
	}
	return max, nil
}

type invoiceItemRepository struct {
	db *gorm.DB
}

// NewInvoiceItemRepository creates a new invoice item repository
func NewInvoiceItemRepository(db *gorm.DB) domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{db: db}
}

func (r *invoiceItemRepository) Create(ctx context.Context, item *entity.InvoiceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *invoiceItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceItem, error) {
	var item entity.InvoiceItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *invoiceItemRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error) {
	var items []entity.InvoiceItem
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("position ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *invoiceItemRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.InvoiceItem{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
