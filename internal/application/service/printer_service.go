package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/money"
	"github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/internal/render"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/jaberco/invoicing-api/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterService formats invoices as ESC/POS and drives the thermal
// printer. Only the two thermal layouts can be printed.
type PrinterService struct {
	printer     printer.Printer
	invoiceRepo repository.InvoiceRepository
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, invoiceRepo repository.InvoiceRepository, printerType string) *PrinterService {
	return &PrinterService{
		printer:     p,
		invoiceRepo: invoiceRepo,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test receipt to the printer. Returns the rendered
// document so the handler can return it as JSON when no printer is
// configured.
func (s *PrinterService) TestPrint() (*render.Document, error) {
	doc := render.Render(render.Input{
		Company: render.Company{
			Name:    "PRINTER TEST",
			Phone:   "(000) 000-0000",
			Address: "Test Address",
			TaxRate: money.DefaultTaxRate,
		},
		Items: []render.Item{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.New(1000, -2)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.New(500, -2)},
		},
		InvoiceNumber: "INV-000000",
		Date:          time.Now().Format("2006-01-02"),
		PrintMode:     true,
	}, render.LayoutNarrowThermal)

	if err := s.printer.Print(FormatInvoice(&doc)); err != nil {
		return &doc, fmt.Errorf("test print failed: %w", err)
	}
	return &doc, nil
}

// PrintInvoice renders a stored invoice in the given thermal layout and
// sends it to the printer.
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceID uuid.UUID, layout render.Layout) (*render.Document, error) {
	if !layout.Thermal() {
		return nil, apperror.NewBadRequestError("Only thermal layouts (58mm, 80mm) can be printed")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	doc := render.Render(renderInput(invoice, true), layout)

	if err := s.printer.Print(FormatInvoice(&doc)); err != nil {
		log.Printf("Printer error (invoice %s): %v", invoiceID, err)
		return &doc, fmt.Errorf("failed to print invoice: %w", err)
	}
	return &doc, nil
}

// FormatInvoice converts a rendered thermal document into an ESC/POS
// byte stream at the document's column width. The amounts are taken
// verbatim from the document so the printed receipt matches the other
// projections exactly.
func FormatInvoice(doc *render.Document) []byte {
	out := printer.NewDocument(doc.Layout.Columns())

	// Header
	out.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(doc.CompanyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if doc.Address != "" {
		out.Text(doc.Address)
	}
	if doc.Phone != "" {
		out.Text(doc.Phone)
	}
	if doc.Website != "" {
		out.Text(doc.Website)
	}

	out.SetAlign(printer.AlignLeft).
		Separator('-')

	out.KeyValue("Invoice:", doc.InvoiceNumber).
		KeyValue("Date:", doc.Date)

	out.Separator('-')

	if doc.Empty {
		out.SetAlign(printer.AlignCenter).
			Text(render.EmptyStateMessage).
			SetAlign(printer.AlignLeft)
	}
	for _, item := range doc.Items {
		out.Text(item.Name)
		if doc.Layout == render.LayoutMediumThermal {
			out.TextF("  Qty: %d   Unit: $%s", item.Quantity, item.UnitPrice)
			out.KeyValue("  Total:", "$"+item.Total)
		} else {
			out.KeyValue(fmt.Sprintf("  %d x $%s", item.Quantity, item.UnitPrice), "$"+item.Total)
		}
	}

	out.Separator('-')

	out.KeyValue("Subtotal:", "$"+doc.Subtotal).
		KeyValue(fmt.Sprintf("Tax (%s%%):", doc.TaxRate), "$"+doc.Tax).
		SetBold(true).
		KeyValue("TOTAL:", "$"+doc.Total).
		SetBold(false)

	out.LineFeed().
		SetAlign(printer.AlignCenter).
		Text(doc.Footer).
		FeedLines(3).
		Cut()

	return out.Bytes()
}
