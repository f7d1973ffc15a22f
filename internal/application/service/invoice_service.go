package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/draft"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/jaberco/invoicing-api/internal/domain/money"
	"github.com/jaberco/invoicing-api/internal/domain/numbering"
	"github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/internal/render"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/jaberco/invoicing-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice-related operations. Totals are always
// recomputed server-side from items and the company tax rate; amounts
// sent by clients are ignored.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	itemRepo    repository.InvoiceItemRepository
	companyRepo repository.CompanyRepository
	policy      numbering.Policy
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.InvoiceItemRepository,
	companyRepo repository.CompanyRepository,
	policy numbering.Policy,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		companyRepo: companyRepo,
		policy:      policy,
	}
}

// ItemInput represents one line item in a create or preview request
type ItemInput struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CompanyInput represents an inline company snapshot. A nil TaxRate
// falls back to the default rate.
type CompanyInput struct {
	Name    string
	Phone   string
	Address string
	Website string
	TaxRate *decimal.Decimal
}

// CreateInvoiceInput represents the create invoice input. An empty
// InvoiceNumber means the configured numbering policy assigns one.
type CreateInvoiceInput struct {
	InvoiceNumber string
	CompanyID     *uuid.UUID
	Company       *CompanyInput
	Status        string
	Items         []ItemInput
}

// PreviewInput represents a live-preview request for an unsaved invoice
type PreviewInput struct {
	InvoiceNumber string
	Company       *CompanyInput
	Items         []ItemInput
	Layout        render.Layout
	PrintMode     bool
}

func validateItems(items []ItemInput) []apperror.FieldError {
	var errs []apperror.FieldError
	for i, item := range items {
		for _, fe := range draft.ValidateItem(item.Name, item.Quantity, item.UnitPrice) {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].%s", i, fe.Field),
				Message: fe.Message,
			})
		}
	}
	return errs
}

func (in *CompanyInput) taxRate() decimal.Decimal {
	if in == nil || in.TaxRate == nil {
		return money.DefaultTaxRate
	}
	return *in.TaxRate
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateInvoice creates an invoice with its items and an optional
// company. When no invoice number is supplied the numbering policy
// derives one; a uniqueness conflict on a derived number is retried
// once with a fresh number.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if errs := validateItems(input.Items); errs != nil {
		return nil, apperror.NewValidationError(errs)
	}

	status := enum.InvoiceStatusSaved
	if input.Status != "" {
		parsed, err := enum.ParseInvoiceStatus(input.Status)
		if err != nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "status", Message: err.Error()},
			})
		}
		status = parsed
	}

	// Resolve the billing party: an existing company by id, an inline
	// snapshot, or none (default tax rate).
	var inlineCompany *entity.Company
	taxRate := money.DefaultTaxRate

	switch {
	case input.CompanyID != nil:
		company, err := s.companyRepo.GetByID(ctx, *input.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, apperror.NewNotFoundError("Company")
		}
		taxRate = company.TaxRate
	case input.Company != nil:
		taxRate = input.Company.taxRate()
		if errs := draft.ValidateTaxRate(taxRate); errs != nil {
			return nil, apperror.NewValidationError(errs)
		}
		inlineCompany = &entity.Company{
			Name:    input.Company.Name,
			Phone:   strPtr(input.Company.Phone),
			Address: strPtr(input.Company.Address),
			Website: strPtr(input.Company.Website),
			TaxRate: taxRate,
		}
	}

	lines := make([]money.Line, len(input.Items))
	items := make([]entity.InvoiceItem, len(input.Items))
	for i, item := range input.Items {
		lines[i] = money.Line{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		items[i] = entity.InvoiceItem{
			Position:  i,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     money.LineTotal(item.Quantity, item.UnitPrice),
		}
	}
	totals := money.ComputeTotals(lines, taxRate)

	generated := input.InvoiceNumber == ""
	number := input.InvoiceNumber
	if generated {
		n, err := s.policy.Next(ctx)
		if err != nil {
			return nil, err
		}
		number = n
	}

	invoice := &entity.Invoice{
		InvoiceNumber: number,
		CompanyID:     input.CompanyID,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Status:        status,
	}

	err := s.invoiceRepo.Create(ctx, invoice, items, inlineCompany)
	if apperror.IsConflict(err) && generated {
		// Another writer claimed the derived number first. Derive a
		// fresh one and try once more.
		number, err = s.policy.Next(ctx)
		if err != nil {
			return nil, err
		}
		invoice.ID = uuid.Nil
		invoice.InvoiceNumber = number
		err = s.invoiceRepo.Create(ctx, invoice, items, inlineCompany)
	}
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetByID(ctx, invoice.ID)
}

// PreviewInvoice validates an unsaved invoice and returns its rendered
// projection for the requested layout. Nothing is persisted.
func (s *InvoiceService) PreviewInvoice(ctx context.Context, input *PreviewInput) (*render.Document, error) {
	d := draft.New()
	if input.Company != nil {
		if err := d.SetCompany(draft.Company{
			Name:    input.Company.Name,
			Phone:   input.Company.Phone,
			Address: input.Company.Address,
			Website: input.Company.Website,
			TaxRate: input.Company.taxRate(),
		}); err != nil {
			return nil, err
		}
	}
	if errs := validateItems(input.Items); errs != nil {
		return nil, apperror.NewValidationError(errs)
	}
	for _, item := range input.Items {
		if err := d.AddItem(item.Name, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	company := d.Company()
	items := d.Items()
	renderItems := make([]render.Item, len(items))
	for i, it := range items {
		renderItems[i] = render.Item{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	doc := render.Render(render.Input{
		Company: render.Company{
			Name:    company.Name,
			Phone:   company.Phone,
			Address: company.Address,
			Website: company.Website,
			TaxRate: company.TaxRate,
		},
		Items:         renderItems,
		InvoiceNumber: input.InvoiceNumber,
		Date:          time.Now().Format("2006-01-02"),
		PrintMode:     input.PrintMode,
	}, input.Layout)
	return &doc, nil
}

// GetInvoice retrieves an invoice by ID with items and company attached
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceByNumber retrieves an invoice by its invoice number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering, sorting and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents a partial invoice update
type UpdateInvoiceInput struct {
	Status    *string
	CompanyID *uuid.UUID
}

// UpdateInvoice applies a partial update. Changing the company
// recomputes totals under the new tax rate.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if input.Status != nil {
		status, err := enum.ParseInvoiceStatus(*input.Status)
		if err != nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "status", Message: err.Error()},
			})
		}
		invoice.Status = status
	}

	companyChanged := false
	if input.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *input.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, apperror.NewNotFoundError("Company")
		}
		invoice.CompanyID = input.CompanyID
		companyChanged = true
	}

	switch {
	case companyChanged:
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return nil, err
		}
		if err := s.recomputeTotals(ctx, id); err != nil {
			return nil, err
		}
	case input.Status != nil:
		// A status toggle touches one column; no full-row save needed.
		if err := s.invoiceRepo.UpdateStatus(ctx, id, invoice.Status); err != nil {
			return nil, err
		}
	}

	return s.invoiceRepo.GetByID(ctx, id)
}

// DeleteInvoice removes an invoice and all its line items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	rows, err := s.invoiceRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.NewNotFoundError("Invoice")
	}
	return nil
}

// GenerateNumber derives the next invoice number without persisting
// anything. The same number can be returned twice under concurrency;
// the create path resolves that with its conflict retry.
func (s *InvoiceService) GenerateNumber(ctx context.Context) (string, error) {
	return s.policy.Next(ctx)
}

// AddItem appends a line item to an existing invoice and recomputes
// the invoice totals.
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, input *ItemInput) (*entity.InvoiceItem, error) {
	if errs := draft.ValidateItem(input.Name, input.Quantity, input.UnitPrice); errs != nil {
		return nil, apperror.NewValidationError(errs)
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	position := 0
	for _, it := range invoice.Items {
		if it.Position >= position {
			position = it.Position + 1
		}
	}
	item := &entity.InvoiceItem{
		InvoiceID: invoiceID,
		Position:  position,
		Name:      input.Name,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Total:     money.LineTotal(input.Quantity, input.UnitPrice),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, invoiceID); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line item and recomputes the owning invoice's
// totals.
func (s *InvoiceService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Invoice item")
	}

	if _, err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return err
	}
	return s.recomputeTotals(ctx, item.InvoiceID)
}

// RenderInvoice projects a stored invoice into the given layout.
func (s *InvoiceService) RenderInvoice(ctx context.Context, id uuid.UUID, layout render.Layout, printMode bool) (*render.Document, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := render.Render(renderInput(invoice, printMode), layout)
	return &doc, nil
}

func renderInput(invoice *entity.Invoice, printMode bool) render.Input {
	company := render.Company{TaxRate: money.DefaultTaxRate}
	if invoice.Company != nil {
		company = render.Company{
			Name:    invoice.Company.Name,
			Phone:   deref(invoice.Company.Phone),
			Address: deref(invoice.Company.Address),
			Website: deref(invoice.Company.Website),
			TaxRate: invoice.Company.TaxRate,
		}
	}

	items := make([]render.Item, len(invoice.Items))
	for i, it := range invoice.Items {
		items[i] = render.Item{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	return render.Input{
		Company:       company,
		Items:         items,
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.CreatedAt.Format("2006-01-02"),
		PrintMode:     printMode,
	}
}

// recomputeTotals rederives subtotal, tax and total from the invoice's
// current items and company tax rate.
func (s *InvoiceService) recomputeTotals(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	taxRate := money.DefaultTaxRate
	if invoice.Company != nil {
		taxRate = invoice.Company.TaxRate
	}

	lines := make([]money.Line, len(invoice.Items))
	for i, it := range invoice.Items {
		lines[i] = money.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals := money.ComputeTotals(lines, taxRate)

	invoice.Subtotal = totals.Subtotal
	invoice.Tax = totals.Tax
	invoice.Total = totals.Total
	return s.invoiceRepo.Update(ctx, invoice)
}
