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

// CompanyRepository implements the ledger.CompanyRepository interface for PostgreSQL
type CompanyRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCompanyRepository creates a new PostgreSQL company repository
func NewCompanyRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.CompanyRepository {
	return &CompanyRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new company and fills in its generated id
func (r *CompanyRepository) Create(ctx context.Context, company *ledger.Company) error {
	query := `
		INSERT INTO companies (name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		company.Name,
		company.CreatedAt,
	).Scan(&company.ID)
	if err != nil {
		r.logger.Error("Failed to create company", "name", company.Name, "error", err)
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by its ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*ledger.Company, error) {
	query := `
		SELECT id, name, created_at
		FROM companies
		WHERE id = $1
	`

	var company ledger.Company
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrCompanyNotFound{CompanyID: id}
		}
		r.logger.Error("Failed to get company", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}
