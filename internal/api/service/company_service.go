package service

import (
	"context"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
)

// CompanyServiceImpl implements the CompanyService interface
type CompanyServiceImpl struct {
	companyRepo ledger.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo ledger.CompanyRepository) CompanyService {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
	}
}

// CreateCompany validates and persists a new company
func (s *CompanyServiceImpl) CreateCompany(ctx context.Context, name string) (*ledger.Company, error) {
	company, err := ledger.NewCompany(name)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// GetCompany retrieves a company by id
func (s *CompanyServiceImpl) GetCompany(ctx context.Context, id int64) (*ledger.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}
