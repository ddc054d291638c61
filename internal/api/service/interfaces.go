package service

import (
	"context"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CompanyService defines the interface for company operations
type CompanyService interface {
	// CreateCompany creates a new company owning its own chart of accounts
	CreateCompany(ctx context.Context, name string) (*ledger.Company, error)

	// GetCompany retrieves a company by id.
	// Returns ErrCompanyNotFound if the company doesn't exist
	GetCompany(ctx context.Context, id int64) (*ledger.Company, error)
}

// AccountService defines the interface for chart-of-accounts operations
type AccountService interface {
	// CreateAccount creates a new account in a company's chart of accounts
	CreateAccount(ctx context.Context, companyID int64, code, name string, accountType ledger.AccountType) (*ledger.Account, error)

	// ListAccounts retrieves all accounts for a company
	ListAccounts(ctx context.Context, companyID int64) ([]*ledger.Account, error)

	// DeactivateAccount marks an account inactive so new entries stop using
	// it. Historical lines and summaries are untouched.
	// Returns ErrAccountNotFound if the account doesn't exist
	DeactivateAccount(ctx context.Context, id int64) error
}

// JournalService defines the interface for journal entry operations
type JournalService interface {
	// CreateEntry validates and persists a balanced journal entry, then
	// publishes a journal.entry.created event for the aggregation worker
	CreateEntry(ctx context.Context, companyID int64, date time.Time, description string, lines []ledger.JournalLine) (*ledger.JournalEntry, error)

	// GetEntry retrieves a journal entry with its lines
	// Returns ErrEntryNotFound if the entry doesn't exist
	GetEntry(ctx context.Context, id int64) (*ledger.JournalEntry, error)
}

// PnLReport is an income statement over a date range, computed from the
// pre-aggregated daily summaries
type PnLReport struct {
	CompanyID    int64
	From         time.Time
	To           time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetProfit    decimal.Decimal
}

// ReportService defines the interface for reporting operations
type ReportService interface {
	ProfitAndLoss(ctx context.Context, companyID int64, from, to time.Time) (*PnLReport, error)
}

// TxRunner executes a function inside a single storage transaction
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
