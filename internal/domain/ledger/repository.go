package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CompanyRepository defines company persistence operations
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error

	// GetByID returns ErrCompanyNotFound if the company doesn't exist
	GetByID(ctx context.Context, id int64) (*Company, error)
}

// AccountRepository defines account persistence operations
type AccountRepository interface {
	Create(ctx context.Context, acc *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*Account, error)

	// GetTypes resolves the account type for each of the given ids.
	// Missing ids are simply absent from the result map.
	GetTypes(ctx context.Context, ids []int64) (map[int64]AccountType, error)

	// Deactivate marks an account inactive. Accounts are never deleted.
	Deactivate(ctx context.Context, id int64) error

	WithTx(tx pgx.Tx) AccountRepository
}

// EntryRepository defines journal entry persistence operations.
// Entries are written once together with their lines and never mutated.
type EntryRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	GetByID(ctx context.Context, id int64) (*JournalEntry, error)
	WithTx(tx pgx.Tx) EntryRepository
}
