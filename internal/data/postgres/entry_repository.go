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

// EntryRepository implements the ledger.EntryRepository interface for PostgreSQL
type EntryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewEntryRepository creates a new PostgreSQL journal entry repository
func NewEntryRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.EntryRepository {
	return &EntryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so the entry and its lines
// are written atomically with any surrounding operations.
func (r *EntryRepository) WithTx(tx pgx.Tx) ledger.EntryRepository {
	return &EntryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a journal entry and all of its lines, filling in generated ids
func (r *EntryRepository) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	entryQuery := `
		INSERT INTO journal_entries (company_id, entry_date, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, entryQuery,
		entry.CompanyID,
		entry.Date,
		entry.Description,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		r.logger.Error("Failed to create journal entry", "company_id", entry.CompanyID, "error", err)
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_lines (journal_entry_id, account_id, debit, credit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for i := range entry.Lines {
		line := &entry.Lines[i]
		line.JournalEntryID = entry.ID
		err := r.querier.QueryRow(ctx, lineQuery,
			line.JournalEntryID,
			line.AccountID,
			line.Debit,
			line.Credit,
		).Scan(&line.ID)
		if err != nil {
			r.logger.Error("Failed to create journal line",
				"journal_entry_id", entry.ID,
				"account_id", line.AccountID,
				"error", err,
			)
			return fmt.Errorf("failed to create journal line: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a journal entry together with its lines.
// Returns ErrEntryNotFound if no entry exists for the id.
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*ledger.JournalEntry, error) {
	entryQuery := `
		SELECT id, company_id, entry_date, description, created_at
		FROM journal_entries
		WHERE id = $1
	`

	var entry ledger.JournalEntry
	err := r.querier.QueryRow(ctx, entryQuery, id).Scan(
		&entry.ID,
		&entry.CompanyID,
		&entry.Date,
		&entry.Description,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get journal entry", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	linesQuery := `
		SELECT id, journal_entry_id, account_id, debit, credit
		FROM journal_lines
		WHERE journal_entry_id = $1
		ORDER BY id ASC
	`

	rows, err := r.querier.Query(ctx, linesQuery, id)
	if err != nil {
		r.logger.Error("Failed to get journal lines", "journal_entry_id", id, "error", err)
		return nil, fmt.Errorf("failed to get journal lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line ledger.JournalLine
		err := rows.Scan(
			&line.ID,
			&line.JournalEntryID,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
		)
		if err != nil {
			r.logger.Error("Failed to scan journal line", "error", err)
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		entry.Lines = append(entry.Lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over journal lines", "error", err)
		return nil, fmt.Errorf("error iterating over journal lines: %w", err)
	}

	return &entry, nil
}
