// Package memory provides an in-memory implementation of the repository
// interfaces. It is interchangeable with the gorm/postgres backend and
// backs the test suite. A single mutex serializes all mutations, which
// also makes invoice-number assignment a single-writer critical section.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/jaberco/invoicing-api/internal/domain/numbering"
	domainRepo "github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/pkg/apperror"
)

// Store holds all in-memory tables behind one mutex.
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]entity.User
	companies map[uuid.UUID]entity.Company
	invoices  map[uuid.UUID]entity.Invoice
	// items are kept per invoice in insertion order, which is also the
	// display order.
	items map[uuid.UUID][]entity.InvoiceItem
	ikeys map[string]entity.IdempotencyKey
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]entity.User),
		companies: make(map[uuid.UUID]entity.Company),
		invoices:  make(map[uuid.UUID]entity.Invoice),
		items:     make(map[uuid.UUID][]entity.InvoiceItem),
		ikeys:     make(map[string]entity.IdempotencyKey),
	}
}

// Invoices returns the invoice repository view of the store.
func (s *Store) Invoices() domainRepo.InvoiceRepository { return &invoiceRepo{s} }

// InvoiceItems returns the line item repository view of the store.
func (s *Store) InvoiceItems() domainRepo.InvoiceItemRepository { return &invoiceItemRepo{s} }

// Companies returns the company repository view of the store.
func (s *Store) Companies() domainRepo.CompanyRepository { return &companyRepo{s} }

// Users returns the user repository view of the store.
func (s *Store) Users() domainRepo.UserRepository { return &userRepo{s} }

// IdempotencyKeys returns the idempotency repository view of the store.
func (s *Store) IdempotencyKeys() domainRepo.IdempotencyRepository { return &idempotencyRepo{s} }

// --- invoices ---

type invoiceRepo struct {
	s *Store
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return apperror.NewConflictError(fmt.Sprintf("Invoice number %s already exists", invoice.InvoiceNumber))
		}
	}

	now := time.Now()
	if company != nil {
		if company.ID == uuid.Nil {
			company.ID = uuid.New()
		}
		company.CreatedAt = now
		company.UpdatedAt = now
		r.s.companies[company.ID] = *company
		invoice.CompanyID = &company.ID
	}

	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	stored := make([]entity.InvoiceItem, len(items))
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].InvoiceID = invoice.ID
		items[i].CreatedAt = now
		stored[i] = items[i]
	}

	r.s.invoices[invoice.ID] = *invoice
	r.s.items[invoice.ID] = stored
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return r.assemble(inv), nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, inv := range r.s.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			return r.assemble(inv), nil
		}
	}
	return nil, nil
}

func (r *invoiceRepo) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		full := r.assemble(inv)
		if params.Search != "" && !r.matchesSearch(full, params.Search) {
			continue
		}
		if params.Status != nil && full.Status != *params.Status {
			continue
		}
		matched = append(matched, full)
	}

	sortInvoices(matched, params.SortBy, params.SortOrder)

	total := int64(len(matched))

	params.Pagination.Validate()
	offset := params.Pagination.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]entity.Invoice, 0, end-offset)
	for _, inv := range matched[offset:end] {
		page = append(page, *inv)
	}
	return page, total, nil
}

func (r *invoiceRepo) matchesSearch(inv *entity.Invoice, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(inv.InvoiceNumber), needle) {
		return true
	}
	return inv.Company != nil && strings.Contains(strings.ToLower(inv.Company.Name), needle)
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.invoices[invoice.ID]; !ok {
		return apperror.NewNotFoundError("Invoice")
	}
	invoice.UpdatedAt = time.Now()
	stored := *invoice
	stored.Company = nil
	stored.Items = nil
	r.s.invoices[invoice.ID] = stored
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[id]
	if !ok {
		return apperror.NewNotFoundError("Invoice")
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	r.s.invoices[id] = inv
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.invoices[id]; !ok {
		return 0, nil
	}
	delete(r.s.invoices, id)
	delete(r.s.items, id)
	return 1, nil
}

func (r *invoiceRepo) MaxInvoiceSequence(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var max int64
	for _, inv := range r.s.invoices {
		if seq, ok := numbering.Sequence(inv.InvoiceNumber); ok && seq > max {
			max = seq
		}
	}
	return max, nil
}

// assemble copies an invoice with its items and company attached.
// Callers hold the store mutex.
func (r *invoiceRepo) assemble(inv entity.Invoice) *entity.Invoice {
	out := inv
	stored := r.s.items[inv.ID]
	out.Items = make([]entity.InvoiceItem, len(stored))
	copy(out.Items, stored)
	if inv.CompanyID != nil {
		if company, ok := r.s.companies[*inv.CompanyID]; ok {
			c := company
			out.Company = &c
		}
	}
	return &out
}

func sortInvoices(invoices []*entity.Invoice, sortBy, sortOrder string) {
	desc := sortOrder != "ASC" && sortOrder != "asc"

	less := func(a, b *entity.Invoice) int {
		switch sortBy {
		case domainRepo.SortByInvoiceNumber:
			return strings.Compare(a.InvoiceNumber, b.InvoiceNumber)
		case domainRepo.SortByTotal:
			return a.Total.Cmp(b.Total)
		case domainRepo.SortByStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		default:
			if a.CreatedAt.Before(b.CreatedAt) {
				return -1
			}
			if a.CreatedAt.After(b.CreatedAt) {
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		c := less(invoices[i], invoices[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		// Tie-break on id ascending regardless of direction.
		return invoices[i].ID.String() < invoices[j].ID.String()
	})
}

// --- invoice items ---

type invoiceItemRepo struct {
	s *Store
}

func (r *invoiceItemRepo) Create(ctx context.Context, item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.invoices[item.InvoiceID]; !ok {
		return apperror.NewNotFoundError("Invoice")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], *item)
	return nil
}

func (r *invoiceItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, items := range r.s.items {
		for _, item := range items {
			if item.ID == id {
				it := item
				return &it, nil
			}
		}
	}
	return nil, nil
}

func (r *invoiceItemRepo) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := r.s.items[invoiceID]
	out := make([]entity.InvoiceItem, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *invoiceItemRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for invoiceID, items := range r.s.items {
		for i, item := range items {
			if item.ID == id {
				r.s.items[invoiceID] = append(items[:i], items[i+1:]...)
				return 1, nil
			}
		}
	}
	return 0, nil
}

// --- companies ---

type companyRepo struct {
	s *Store
}

func (r *companyRepo) Create(ctx context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	r.s.companies[company.ID] = *company
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	company, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &company, nil
}

func (r *companyRepo) Update(ctx context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[company.ID]; !ok {
		return apperror.NewNotFoundError("Company")
	}
	company.UpdatedAt = time.Now()
	r.s.companies[company.ID] = *company
	return nil
}

// --- users ---

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return apperror.NewConflictError("Username already taken")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, user := range r.s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// --- idempotency keys ---

type idempotencyRepo struct {
	s *Store
}

func (r *idempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ikey, ok := r.s.ikeys[key]
	if !ok || ikey.UserID != userID {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	ikey.CreatedAt = time.Now()
	r.s.ikeys[ikey.Key] = *ikey
	return nil
}

func (r *idempotencyRepo) DeleteExpired(ctx context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for key, ikey := range r.s.ikeys {
		if now.After(ikey.ExpiresAt) {
			delete(r.s.ikeys, key)
		}
	}
	return nil
}
