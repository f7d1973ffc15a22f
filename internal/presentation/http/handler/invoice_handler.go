package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/application/service"
	"github.com/jaberco/invoicing-api/internal/domain/enum"
	"github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/internal/presentation/http/dto/request"
	"github.com/jaberco/invoicing-api/internal/presentation/http/dto/response"
	"github.com/jaberco/invoicing-api/internal/render"
	"github.com/jaberco/invoicing-api/pkg/pagination"
)

// sortFields maps API sort keys to store columns. Both camelCase and
// snake_case spellings are accepted.
var sortFields = map[string]string{
	"invoiceNumber":  repository.SortByInvoiceNumber,
	"invoice_number": repository.SortByInvoiceNumber,
	"total":          repository.SortByTotal,
	"status":         repository.SortByStatus,
	"createdAt":      repository.SortByCreatedAt,
	"created_at":     repository.SortByCreatedAt,
}

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, exportService *service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

// List handles listing invoices with filtering, sorting and pagination
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    sortFields[c.Query("sort_by")],
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseInvoiceStatus(statusStr)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Status = &status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		CompanyID:     req.CompanyID,
		Company:       companyInput(req.Company),
		Status:        req.Status,
		Items:         itemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving a single invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetByNumber handles retrieving a single invoice by invoice number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles a partial invoice update
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &service.UpdateInvoiceInput{
		Status:    req.Status,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice and its items
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// GenerateNumber handles deriving the next invoice number without
// persisting anything
func (h *InvoiceHandler) GenerateNumber(c *gin.Context) {
	number, err := h.invoiceService.GenerateNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice number generated", gin.H{"invoice_number": number})
}

// Preview handles rendering an unsaved invoice
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req request.PreviewInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	layout := render.LayoutFullPage
	if req.Layout != "" {
		parsed, err := render.ParseLayout(req.Layout)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		layout = parsed
	}

	doc, err := h.invoiceService.PreviewInvoice(c.Request.Context(), &service.PreviewInput{
		InvoiceNumber: req.InvoiceNumber,
		Company:       companyInput(req.Company),
		Items:         itemInputs(req.Items),
		Layout:        layout,
		PrintMode:     req.PrintMode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice preview rendered", doc)
}

// Render handles projecting a stored invoice into a layout. The format
// query selects the representation: json (default), text or html.
func (h *InvoiceHandler) Render(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	layout, err := render.ParseLayout(c.DefaultQuery("layout", render.LayoutFullPage.String()))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	printMode, _ := strconv.ParseBool(c.DefaultQuery("print", "false"))

	doc, err := h.invoiceService.RenderInvoice(c.Request.Context(), id, layout, printMode)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "text":
		c.String(200, doc.Text())
	case "html":
		html, err := doc.HTML()
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		c.Data(200, "text/html; charset=utf-8", []byte(html))
	default:
		response.OK(c, "Invoice rendered successfully", doc)
	}
}

// ExportPDF handles the A4 PDF download of an invoice
func (h *InvoiceHandler) ExportPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	pdf, err := h.exportService.ExportPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id))
	c.Data(200, "application/pdf", pdf)
}

// AddItem handles appending a line item to an existing invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	var req request.AddInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.invoiceService.AddItem(c.Request.Context(), req.InvoiceID, &service.ItemInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice item added successfully", item)
}

// DeleteItem handles removing a line item
func (h *InvoiceHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.invoiceService.RemoveItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice item deleted successfully", nil)
}

func itemInputs(items []request.InvoiceItemPayload) []service.ItemInput {
	out := make([]service.ItemInput, len(items))
	for i, item := range items {
		out[i] = service.ItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return out
}

func companyInput(payload *request.CompanyPayload) *service.CompanyInput {
	if payload == nil {
		return nil
	}
	return &service.CompanyInput{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Address: payload.Address,
		Website: payload.Website,
		TaxRate: payload.TaxRate,
	}
}
