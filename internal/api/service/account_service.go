package service

import (
	"context"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo ledger.AccountRepository
	companyRepo ledger.CompanyRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo ledger.AccountRepository, companyRepo ledger.CompanyRepository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
	}
}

// CreateAccount validates and persists a new account in an existing company's
// chart. The company_id+code uniqueness is enforced by the database.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, companyID int64, code, name string, accountType ledger.AccountType) (*ledger.Account, error) {
	acc, err := ledger.NewAccount(companyID, code, name, accountType)
	if err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// ListAccounts retrieves all accounts for a company
func (s *AccountServiceImpl) ListAccounts(ctx context.Context, companyID int64) ([]*ledger.Account, error) {
	return s.accountRepo.ListByCompany(ctx, companyID)
}

// DeactivateAccount marks an account inactive
func (s *AccountServiceImpl) DeactivateAccount(ctx context.Context, id int64) error {
	return s.accountRepo.Deactivate(ctx, id)
}
