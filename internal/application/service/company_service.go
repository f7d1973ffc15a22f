package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jaberco/invoicing-api/internal/domain/draft"
	"github.com/jaberco/invoicing-api/internal/domain/entity"
	"github.com/jaberco/invoicing-api/internal/domain/repository"
	"github.com/jaberco/invoicing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CompanyService handles billing-party operations
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompany creates a company. A nil tax rate falls back to the
// default rate.
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Company name is required"},
		})
	}
	taxRate := input.taxRate()
	if errs := draft.ValidateTaxRate(taxRate); errs != nil {
		return nil, apperror.NewValidationError(errs)
	}

	company := &entity.Company{
		Name:    input.Name,
		Phone:   strPtr(input.Phone),
		Address: strPtr(input.Address),
		Website: strPtr(input.Website),
		TaxRate: taxRate,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// UpdateCompanyInput represents a partial company update
type UpdateCompanyInput struct {
	Name    *string
	Phone   *string
	Address *string
	Website *string
	TaxRate *decimal.Decimal
}

// UpdateCompany applies a partial update to a company
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, input *UpdateCompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "name", Message: "Company name is required"},
			})
		}
		company.Name = *input.Name
	}
	if input.Phone != nil {
		company.Phone = strPtr(*input.Phone)
	}
	if input.Address != nil {
		company.Address = strPtr(*input.Address)
	}
	if input.Website != nil {
		company.Website = strPtr(*input.Website)
	}
	if input.TaxRate != nil {
		if errs := draft.ValidateTaxRate(*input.TaxRate); errs != nil {
			return nil, apperror.NewValidationError(errs)
		}
		company.TaxRate = *input.TaxRate
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}
