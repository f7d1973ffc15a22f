package request

import "github.com/shopspring/decimal"

// CreateCompanyRequest represents the create company request body
type CreateCompanyRequest struct {
	Name    string           `json:"name" binding:"required"`
	Phone   string           `json:"phone"`
	Address string           `json:"address"`
	Website string           `json:"website"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
}

// UpdateCompanyRequest represents a partial company update
type UpdateCompanyRequest struct {
	Name    *string          `json:"name"`
	Phone   *string          `json:"phone"`
	Address *string          `json:"address"`
	Website *string          `json:"website"`
	TaxRate *decimal.Decimal `json:"tax_rate"`
}
