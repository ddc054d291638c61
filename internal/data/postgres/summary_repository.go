package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/summary"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SummaryRepository implements the summary.Repository interface for PostgreSQL
type SummaryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewSummaryRepository creates a new PostgreSQL daily summary repository
func NewSummaryRepository(logger *slog.Logger, db *persistence.PostgresDB) summary.Repository {
	return &SummaryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so the delta commits or rolls
// back together with the event log claim.
func (r *SummaryRepository) WithTx(tx pgx.Tx) summary.Repository {
	return &SummaryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Get retrieves the summary row for (companyID, date), or nil if no event has
// been applied for that day yet.
func (r *SummaryRepository) Get(ctx context.Context, companyID int64, date time.Time) (*summary.DailySummary, error) {
	query := `
		SELECT company_id, summary_date, total_income, total_expense, created_at, updated_at
		FROM daily_summaries
		WHERE company_id = $1 AND summary_date = $2
	`

	var s summary.DailySummary
	err := r.querier.QueryRow(ctx, query, companyID, date).Scan(
		&s.CompanyID,
		&s.Date,
		&s.TotalIncome,
		&s.TotalExpense,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No summary yet for that day
		}
		r.logger.Error("Failed to get daily summary", "company_id", companyID, "date", date, "error", err)
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}

	return &s, nil
}

// ApplyDelta adds the delta to the (companyId, date) row, creating it lazily
// on the first applied event for that day.
func (r *SummaryRepository) ApplyDelta(ctx context.Context, delta summary.Delta) error {
	query := `
		INSERT INTO daily_summaries (company_id, summary_date, total_income, total_expense, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (company_id, summary_date) DO UPDATE
		SET total_income = daily_summaries.total_income + EXCLUDED.total_income,
		    total_expense = daily_summaries.total_expense + EXCLUDED.total_expense,
		    updated_at = NOW()
	`

	_, err := r.querier.Exec(ctx, query,
		delta.CompanyID,
		delta.Date,
		delta.Income,
		delta.Expense,
	)
	if err != nil {
		r.logger.Error("Failed to apply summary delta",
			"company_id", delta.CompanyID,
			"date", delta.Date,
			"error", err,
		)
		return fmt.Errorf("failed to apply summary delta: %w", err)
	}

	return nil
}

// SumRange sums the totals of all rows for the company in [from, to] inclusive
func (r *SummaryRepository) SumRange(ctx context.Context, companyID int64, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_income), 0), COALESCE(SUM(total_expense), 0)
		FROM daily_summaries
		WHERE company_id = $1 AND summary_date BETWEEN $2 AND $3
	`

	var income, expense decimal.Decimal
	err := r.querier.QueryRow(ctx, query, companyID, from, to).Scan(&income, &expense)
	if err != nil {
		r.logger.Error("Failed to sum daily summaries",
			"company_id", companyID,
			"from", from,
			"to", to,
			"error", err,
		)
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum daily summaries: %w", err)
	}

	return income, expense, nil
}
