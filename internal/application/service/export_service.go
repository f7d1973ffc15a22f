package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/internal/render"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/jung-kurt/gofpdf"
)

// ExportService produces the downloadable A4 PDF of an invoice.
type ExportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewExportService creates a new export service.
func NewExportService(invoiceRepo repository.InvoiceRepository) *ExportService {
	return &ExportService{invoiceRepo: invoiceRepo}
}

// ExportPDF renders a stored invoice in the full-page layout and
// returns it as PDF bytes.
func (s *ExportService) ExportPDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	doc := render.Render(renderInput(invoice, true), render.LayoutFullPage)
	return BuildPDF(&doc)
}

// BuildPDF converts a full-page rendered document into an A4 PDF. The
// amounts come verbatim from the document so the PDF matches the other
// projections exactly.
func BuildPDF(doc *render.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+doc.InvoiceNumber, false)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, doc.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{doc.Address, doc.Phone, doc.Website} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(95, 7, "Invoice #: "+doc.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Date: "+doc.Date, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Item table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	if doc.Empty {
		pdf.CellFormat(190, 8, render.EmptyStateMessage, "1", 1, "C", false, 0, "")
	}
	for _, item := range doc.Items {
		pdf.CellFormat(90, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, "$"+item.UnitPrice, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, "$"+item.Total, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block, right-aligned
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(150, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "$"+doc.Subtotal, "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 6, fmt.Sprintf("Tax (%s%%):", doc.TaxRate), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "$"+doc.Tax, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 7, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "$"+doc.Total, "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 6, doc.Footer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
