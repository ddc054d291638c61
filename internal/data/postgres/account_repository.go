// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations while maintaining
// transaction safety and proper error handling for the cashflow ledger.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the ledger.AccountRepository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.AccountRepository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic operations
// across multiple repository calls.
func (r *AccountRepository) WithTx(tx pgx.Tx) ledger.AccountRepository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account and fills in its generated id
func (r *AccountRepository) Create(ctx context.Context, acc *ledger.Account) error {
	query := `
		INSERT INTO accounts (company_id, code, name, type, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		acc.CompanyID,
		acc.Code,
		acc.Name,
		acc.Type,
		acc.Active,
		acc.CreatedAt,
		acc.UpdatedAt,
	).Scan(&acc.ID)
	if err != nil {
		r.logger.Error("Failed to create account", "company_id", acc.CompanyID, "code", acc.Code, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*ledger.Account, error) {
	query := `
		SELECT id, company_id, code, name, type, active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc ledger.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.CompanyID,
		&acc.Code,
		&acc.Name,
		&acc.Type,
		&acc.Active,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// ListByCompany retrieves all accounts belonging to a company, active or not
func (r *AccountRepository) ListByCompany(ctx context.Context, companyID int64) ([]*ledger.Account, error) {
	query := `
		SELECT id, company_id, code, name, type, active, created_at, updated_at
		FROM accounts
		WHERE company_id = $1
		ORDER BY code ASC
	`

	rows, err := r.querier.Query(ctx, query, companyID)
	if err != nil {
		r.logger.Error("Failed to list accounts", "company_id", companyID, "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account
	for rows.Next() {
		var acc ledger.Account
		err := rows.Scan(
			&acc.ID,
			&acc.CompanyID,
			&acc.Code,
			&acc.Name,
			&acc.Type,
			&acc.Active,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan account", "error", err)
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over accounts", "error", err)
		return nil, fmt.Errorf("error iterating over accounts: %w", err)
	}

	return accounts, nil
}

// GetTypes resolves the account type for each of the given ids
func (r *AccountRepository) GetTypes(ctx context.Context, ids []int64) (map[int64]ledger.AccountType, error) {
	if len(ids) == 0 {
		return map[int64]ledger.AccountType{}, nil
	}

	query := `
		SELECT id, type
		FROM accounts
		WHERE id = ANY($1)
	`

	rows, err := r.querier.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error("Failed to get account types", "error", err)
		return nil, fmt.Errorf("failed to get account types: %w", err)
	}
	defer rows.Close()

	types := make(map[int64]ledger.AccountType, len(ids))
	for rows.Next() {
		var id int64
		var accountType ledger.AccountType
		if err := rows.Scan(&id, &accountType); err != nil {
			r.logger.Error("Failed to scan account type", "error", err)
			return nil, fmt.Errorf("failed to scan account type: %w", err)
		}
		types[id] = accountType
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over account types", "error", err)
		return nil, fmt.Errorf("error iterating over account types: %w", err)
	}

	return types, nil
}

// Deactivate marks an account inactive.
// Returns ErrAccountNotFound if the account doesn't exist.
func (r *AccountRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE accounts
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate account", "id", id, "error", err)
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound{AccountID: id}
	}

	return nil
}
