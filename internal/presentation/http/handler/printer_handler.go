package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/application/service"
	"github.com/jaberco/invoicing-api/internal/presentation/http/dto/request"
	"github.com/jaberco/invoicing-api/internal/presentation/http/dto/response"
	"github.com/jaberco/invoicing-api/internal/render"
)

// PrinterHandler handles thermal printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns printer connection status
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint sends a test receipt to the printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	doc, err := h.printerService.TestPrint()
	if err != nil {
		// The rendered document is still useful when no hardware is
		// attached.
		response.OK(c, "Printer unavailable, returning rendered document", gin.H{
			"document": doc,
			"error":    err.Error(),
		})
		return
	}

	response.OK(c, "Test print sent", doc)
}

// PrintInvoice renders a stored invoice in a thermal layout and sends
// it to the printer
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.PrintInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}
	if req.Layout == "" {
		req.Layout = render.LayoutNarrowThermal.String()
	}

	layout, err := render.ParseLayout(req.Layout)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.printerService.PrintInvoice(c.Request.Context(), id, layout)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent to printer", doc)
}
