package request

// PrintInvoiceRequest represents the print request body. Layout must be
// one of the thermal layouts (58mm, 80mm); it defaults to 58mm.
type PrintInvoiceRequest struct {
	Layout string `json:"layout"`
}
