package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/jaberco/invoicing-api/internal/domain/numbering"
	"github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/internal/infrastructure/repository/memory"
	"github.com/jaberco/invoicing-api/internal/render"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/jaberco/invoicing-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// scriptedPolicy replays a fixed list of numbers, repeating the last
// one once exhausted.
type scriptedPolicy struct {
	numbers []string
	i       int
}

func (p *scriptedPolicy) Next(ctx context.Context) (string, error) {
	n := p.numbers[p.i]
	if p.i < len(p.numbers)-1 {
		p.i++
	}
	return n, nil
}

func newTestService(policy numbering.Policy) (*InvoiceService, *memory.Store) {
	store := memory.NewStore()
	if policy == nil {
		policy = numbering.NewSequentialPolicy(store.Invoices())
	}
	svc := NewInvoiceService(store.Invoices(), store.InvoiceItems(), store.Companies(), policy)
	return svc, store
}

func widgetAndGadget() []ItemInput {
	return []ItemInput{
		{Name: "Widget", Quantity: 2, UnitPrice: dec("9.99")},
		{Name: "Gadget", Quantity: 1, UnitPrice: dec("25.00")},
	}
}

func listAll(t *testing.T, svc *InvoiceService, sortBy, sortOrder string) []entity.Invoice {
	t.Helper()
	result, err := svc.ListInvoices(context.Background(), &repository.InvoiceFilterParams{
		Pagination: pagination.DefaultPagination(),
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	})
	require.NoError(t, err)
	return result.Items
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a sequential number and computes totals", func(t *testing.T) {
		svc, _ := newTestService(nil)

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		assert.Equal(t, "INV-000001", invoice.InvoiceNumber)
		assert.Equal(t, "44.98", invoice.Subtotal.StringFixed(2))
		assert.Equal(t, "5.85", invoice.Tax.StringFixed(2))
		assert.Equal(t, "50.83", invoice.Total.StringFixed(2))
		assert.Equal(t, enum.InvoiceStatusSaved, invoice.Status)
		assert.Len(t, invoice.Items, 2)
	})

	t.Run("numbers increment across creates", func(t *testing.T) {
		svc, _ := newTestService(nil)

		first, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)
		second, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		assert.Equal(t, "INV-000001", first.InvoiceNumber)
		assert.Equal(t, "INV-000002", second.InvoiceNumber)
	})

	t.Run("accepts a client-supplied number", func(t *testing.T) {
		svc, _ := newTestService(nil)

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			InvoiceNumber: "INV-900000",
			Items:         widgetAndGadget(),
		})
		require.NoError(t, err)
		assert.Equal(t, "INV-900000", invoice.InvoiceNumber)
	})

	t.Run("duplicate client-supplied number is a conflict", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{InvoiceNumber: "INV-000007", Items: widgetAndGadget()})
		require.NoError(t, err)

		_, err = svc.CreateInvoice(ctx, &CreateInvoiceInput{InvoiceNumber: "INV-000007", Items: widgetAndGadget()})
		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("retries once with a fresh number on conflict", func(t *testing.T) {
		policy := &scriptedPolicy{numbers: []string{"INV-000001", "INV-000002"}}
		svc, _ := newTestService(policy)

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{InvoiceNumber: "INV-000001", Items: widgetAndGadget()})
		require.NoError(t, err)

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)
		assert.Equal(t, "INV-000002", invoice.InvoiceNumber)
	})

	t.Run("gives up after the retry also conflicts", func(t *testing.T) {
		policy := &scriptedPolicy{numbers: []string{"INV-000001"}}
		svc, _ := newTestService(policy)

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{InvoiceNumber: "INV-000001", Items: widgetAndGadget()})
		require.NoError(t, err)

		_, err = svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("rejects invalid items with indexed field errors", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Items: []ItemInput{
				{Name: "Widget", Quantity: 1, UnitPrice: dec("1.00")},
				{Name: "", Quantity: 0, UnitPrice: dec("-1")},
			},
		})
		require.Error(t, err)

		appErr := apperror.GetAppError(err)
		require.Len(t, appErr.Errors, 3)
		assert.Equal(t, "items[1].name", appErr.Errors[0].Field)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Status: "archived", Items: widgetAndGadget()})
		require.Error(t, err)
		assert.Equal(t, 422, apperror.GetAppError(err).Code)
	})

	t.Run("inline company tax rate drives the totals", func(t *testing.T) {
		svc, _ := newTestService(nil)
		rate := dec("5")

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Company: &CompanyInput{Name: "Acme", TaxRate: &rate},
			Items:   []ItemInput{{Name: "Widget", Quantity: 1, UnitPrice: dec("100.00")}},
		})
		require.NoError(t, err)

		assert.Equal(t, "5.00", invoice.Tax.StringFixed(2))
		assert.Equal(t, "105.00", invoice.Total.StringFixed(2))
		require.NotNil(t, invoice.Company)
		assert.Equal(t, "Acme", invoice.Company.Name)
	})

	t.Run("unknown company id is not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		id := uuid.New()

		_, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{CompanyID: &id, Items: widgetAndGadget()})
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("empty item list is a valid invoice", func(t *testing.T) {
		svc, _ := newTestService(nil)

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{})
		require.NoError(t, err)
		assert.Equal(t, "0.00", invoice.Total.StringFixed(2))
		assert.Empty(t, invoice.Items)
	})
}

func TestGetInvoice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		got, err := svc.GetInvoice(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
		assert.Len(t, got.Items, 2)
	})

	t.Run("by number", func(t *testing.T) {
		got, err := svc.GetInvoiceByNumber(ctx, created.InvoiceNumber)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := svc.GetInvoice(ctx, uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("unknown number is not found", func(t *testing.T) {
		_, err := svc.GetInvoiceByNumber(ctx, "INV-999999")
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestListInvoices(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *InvoiceService, price string) *entity.Invoice {
		t.Helper()
		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Items: []ItemInput{{Name: "Item", Quantity: 1, UnitPrice: dec(price)}},
		})
		require.NoError(t, err)
		return invoice
	}

	t.Run("sorts by total descending", func(t *testing.T) {
		svc, _ := newTestService(nil)
		seed(t, svc, "10.00")
		seed(t, svc, "5.00")
		seed(t, svc, "20.00")

		items := listAll(t, svc, repository.SortByTotal, "DESC")
		require.Len(t, items, 3)
		assert.Equal(t, "22.60", items[0].Total.StringFixed(2))
		assert.Equal(t, "11.30", items[1].Total.StringFixed(2))
		assert.Equal(t, "5.65", items[2].Total.StringFixed(2))
	})

	t.Run("equal keys tie-break on id ascending", func(t *testing.T) {
		svc, _ := newTestService(nil)
		a := seed(t, svc, "10.00")
		b := seed(t, svc, "10.00")

		lo, hi := a.ID.String(), b.ID.String()
		if lo > hi {
			lo, hi = hi, lo
		}

		items := listAll(t, svc, repository.SortByTotal, "ASC")
		require.Len(t, items, 2)
		assert.Equal(t, lo, items[0].ID.String())
		assert.Equal(t, hi, items[1].ID.String())

		// Same tie-break regardless of direction.
		items = listAll(t, svc, repository.SortByTotal, "DESC")
		assert.Equal(t, lo, items[0].ID.String())
	})

	t.Run("sorts by invoice number", func(t *testing.T) {
		svc, _ := newTestService(nil)
		seed(t, svc, "1.00")
		seed(t, svc, "1.00")
		seed(t, svc, "1.00")

		items := listAll(t, svc, repository.SortByInvoiceNumber, "ASC")
		require.Len(t, items, 3)
		assert.Equal(t, "INV-000001", items[0].InvoiceNumber)
		assert.Equal(t, "INV-000003", items[2].InvoiceNumber)
	})

	t.Run("filters by status", func(t *testing.T) {
		svc, _ := newTestService(nil)
		paid := seed(t, svc, "1.00")
		seed(t, svc, "2.00")

		status := "paid"
		_, err := svc.UpdateInvoice(ctx, paid.ID, &UpdateInvoiceInput{Status: &status})
		require.NoError(t, err)

		filter := enum.InvoiceStatusPaid
		result, err := svc.ListInvoices(ctx, &repository.InvoiceFilterParams{
			Pagination: pagination.DefaultPagination(),
			Status:     &filter,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, paid.ID, result.Items[0].ID)
		assert.Equal(t, int64(1), result.Pagination.Total)
	})

	t.Run("searches by invoice number substring", func(t *testing.T) {
		svc, _ := newTestService(nil)
		seed(t, svc, "1.00")
		target, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			InvoiceNumber: "INV-777777",
			Items:         []ItemInput{{Name: "Item", Quantity: 1, UnitPrice: dec("1.00")}},
		})
		require.NoError(t, err)

		result, err := svc.ListInvoices(ctx, &repository.InvoiceFilterParams{
			Pagination: pagination.DefaultPagination(),
			Search:     "7777",
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, target.ID, result.Items[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		svc, _ := newTestService(nil)
		for i := 0; i < 5; i++ {
			seed(t, svc, "1.00")
		}

		result, err := svc.ListInvoices(ctx, &repository.InvoiceFilterParams{
			Pagination: &pagination.PaginationParams{Page: 2, PerPage: 2},
			SortBy:     repository.SortByInvoiceNumber,
			SortOrder:  "ASC",
		})
		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(5), result.Pagination.Total)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, "INV-000003", result.Items[0].InvoiceNumber)
	})
}

func TestUpdateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the status", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		status := "paid"
		updated, err := svc.UpdateInvoice(ctx, created.ID, &UpdateInvoiceInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, enum.InvoiceStatusPaid, updated.Status)
	})

	t.Run("a status-only update leaves totals and items untouched", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		status := "paid"
		updated, err := svc.UpdateInvoice(ctx, created.ID, &UpdateInvoiceInput{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, created.Total.StringFixed(2), updated.Total.StringFixed(2))
		assert.Equal(t, created.Subtotal.StringFixed(2), updated.Subtotal.StringFixed(2))
		assert.Len(t, updated.Items, 2)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		status := "bogus"
		_, err = svc.UpdateInvoice(ctx, created.ID, &UpdateInvoiceInput{Status: &status})
		require.Error(t, err)
		assert.Equal(t, 422, apperror.GetAppError(err).Code)
	})

	t.Run("reassigning the company recomputes totals", func(t *testing.T) {
		svc, store := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Items: []ItemInput{{Name: "Item", Quantity: 1, UnitPrice: dec("100.00")}},
		})
		require.NoError(t, err)
		assert.Equal(t, "113.00", created.Total.StringFixed(2))

		company := &entity.Company{Name: "Zero Tax Inc", TaxRate: decimal.Zero}
		require.NoError(t, store.Companies().Create(ctx, company))

		updated, err := svc.UpdateInvoice(ctx, created.ID, &UpdateInvoiceInput{CompanyID: &company.ID})
		require.NoError(t, err)
		assert.Equal(t, "100.00", updated.Total.StringFixed(2))
		assert.Equal(t, "0.00", updated.Tax.StringFixed(2))
	})

	t.Run("unknown invoice is not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		status := "paid"
		_, err := svc.UpdateInvoice(ctx, uuid.New(), &UpdateInvoiceInput{Status: &status})
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestDeleteInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to line items", func(t *testing.T) {
		svc, store := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteInvoice(ctx, created.ID))

		_, err = svc.GetInvoice(ctx, created.ID)
		assert.True(t, apperror.IsNotFound(err))

		items, err := store.InvoiceItems().GetByInvoiceID(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("unknown invoice is not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		err := svc.DeleteInvoice(ctx, uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("delete is not idempotent", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteInvoice(ctx, created.ID))
		assert.True(t, apperror.IsNotFound(svc.DeleteInvoice(ctx, created.ID)))
	})
}

func TestInvoiceItems(t *testing.T) {
	ctx := context.Background()

	t.Run("adding an item recomputes totals", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Items: []ItemInput{{Name: "Item", Quantity: 1, UnitPrice: dec("10.00")}},
		})
		require.NoError(t, err)
		assert.Equal(t, "11.30", created.Total.StringFixed(2))

		item, err := svc.AddItem(ctx, created.ID, &ItemInput{Name: "Extra", Quantity: 1, UnitPrice: dec("10.00")})
		require.NoError(t, err)
		assert.Equal(t, "10.00", item.Total.StringFixed(2))

		got, err := svc.GetInvoice(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "20.00", got.Subtotal.StringFixed(2))
		assert.Equal(t, "22.60", got.Total.StringFixed(2))
		assert.Len(t, got.Items, 2)
	})

	t.Run("removing an item recomputes totals", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Items: []ItemInput{
				{Name: "Keep", Quantity: 1, UnitPrice: dec("10.00")},
				{Name: "Drop", Quantity: 1, UnitPrice: dec("10.00")},
			},
		})
		require.NoError(t, err)

		var dropID uuid.UUID
		for _, it := range created.Items {
			if it.Name == "Drop" {
				dropID = it.ID
			}
		}
		require.NotEqual(t, uuid.Nil, dropID)

		require.NoError(t, svc.RemoveItem(ctx, dropID))

		got, err := svc.GetInvoice(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "11.30", got.Total.StringFixed(2))
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Keep", got.Items[0].Name)
	})

	t.Run("display order is fixed by position", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{
			Items: []ItemInput{
				{Name: "First", Quantity: 1, UnitPrice: dec("1.00")},
				{Name: "Second", Quantity: 1, UnitPrice: dec("2.00")},
			},
		})
		require.NoError(t, err)

		_, err = svc.AddItem(ctx, created.ID, &ItemInput{Name: "Third", Quantity: 1, UnitPrice: dec("3.00")})
		require.NoError(t, err)

		got, err := svc.GetInvoice(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 3)

		var secondID uuid.UUID
		for _, it := range got.Items {
			if it.Name == "Second" {
				secondID = it.ID
			}
		}
		require.NoError(t, svc.RemoveItem(ctx, secondID))

		// A later append never reuses a freed position.
		_, err = svc.AddItem(ctx, created.ID, &ItemInput{Name: "Fourth", Quantity: 1, UnitPrice: dec("4.00")})
		require.NoError(t, err)

		got, err = svc.GetInvoice(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 3)

		names := make([]string, len(got.Items))
		positions := make([]int, len(got.Items))
		for i, it := range got.Items {
			names[i] = it.Name
			positions[i] = it.Position
		}
		assert.Equal(t, []string{"First", "Third", "Fourth"}, names)
		assert.Equal(t, []int{0, 2, 3}, positions)
	})

	t.Run("adding to an unknown invoice is not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		_, err := svc.AddItem(ctx, uuid.New(), &ItemInput{Name: "X", Quantity: 1, UnitPrice: dec("1.00")})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("removing an unknown item is not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		assert.True(t, apperror.IsNotFound(svc.RemoveItem(ctx, uuid.New())))
	})

	t.Run("invalid item is rejected before touching the invoice", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
		require.NoError(t, err)

		_, err = svc.AddItem(ctx, created.ID, &ItemInput{Name: "", Quantity: 0, UnitPrice: dec("1.00")})
		require.Error(t, err)

		got, err := svc.GetInvoice(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)
	})
}

func TestGenerateNumber(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	n, err := svc.GenerateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", n)

	// Derivation is side-effect free.
	n, err = svc.GenerateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", n)

	_, err = svc.CreateInvoice(ctx, &CreateInvoiceInput{Items: widgetAndGadget()})
	require.NoError(t, err)

	n, err = svc.GenerateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-000002", n)
}

func TestPreviewInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("renders without persisting", func(t *testing.T) {
		svc, _ := newTestService(nil)

		doc, err := svc.PreviewInvoice(ctx, &PreviewInput{
			Items:  widgetAndGadget(),
			Layout: render.LayoutNarrowThermal,
		})
		require.NoError(t, err)

		assert.Equal(t, render.LayoutNarrowThermal, doc.Layout)
		assert.Equal(t, "44.98", doc.Subtotal)
		assert.Equal(t, "50.83", doc.Total)

		items := listAll(t, svc, "", "")
		assert.Empty(t, items)
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.PreviewInvoice(ctx, &PreviewInput{
			Items:  []ItemInput{{Name: "", Quantity: 1, UnitPrice: dec("1.00")}},
			Layout: render.LayoutFullPage,
		})
		require.Error(t, err)
		assert.Equal(t, "items[0].name", apperror.GetAppError(err).Errors[0].Field)
	})

	t.Run("company rate applies", func(t *testing.T) {
		svc, _ := newTestService(nil)
		rate := dec("0")

		doc, err := svc.PreviewInvoice(ctx, &PreviewInput{
			Company: &CompanyInput{Name: "Acme", TaxRate: &rate},
			Items:   []ItemInput{{Name: "Item", Quantity: 1, UnitPrice: dec("50.00")}},
			Layout:  render.LayoutFullPage,
		})
		require.NoError(t, err)
		assert.Equal(t, "0.00", doc.Tax)
		assert.Equal(t, "50.00", doc.Total)
	})

	t.Run("preview agrees with create on an explicit zero rate", func(t *testing.T) {
		svc, _ := newTestService(nil)
		rate := dec("0")
		company := &CompanyInput{TaxRate: &rate}
		items := []ItemInput{{Name: "Item", Quantity: 1, UnitPrice: dec("100.00")}}

		doc, err := svc.PreviewInvoice(ctx, &PreviewInput{
			Company: company,
			Items:   items,
			Layout:  render.LayoutFullPage,
		})
		require.NoError(t, err)

		invoice, err := svc.CreateInvoice(ctx, &CreateInvoiceInput{Company: company, Items: items})
		require.NoError(t, err)

		assert.Equal(t, "0.00", doc.Tax)
		assert.Equal(t, doc.Tax, invoice.Tax.StringFixed(2))
		assert.Equal(t, doc.Total, invoice.Total.StringFixed(2))
	})
}
