package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// EventLogRepository implements the event.LogRepository interface for PostgreSQL
type EventLogRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(logger *slog.Logger, db *persistence.PostgresDB) event.LogRepository {
	return &EventLogRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so the claim commits or rolls
// back together with the summary mutation it guards.
func (r *EventLogRepository) WithTx(tx pgx.Tx) event.LogRepository {
	return &EventLogRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// TryClaim inserts the record keyed by eventId. The primary key on event_id is
// the serialization point: of two concurrent claims for the same eventId,
// exactly one insert takes effect and the other reports zero rows affected.
func (r *EventLogRepository) TryClaim(ctx context.Context, record *event.LogRecord) (bool, error) {
	query := `
		INSERT INTO event_log (event_id, company_id, event_type, journal_entry_id, outcome, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := r.querier.Exec(ctx, query,
		record.EventID,
		record.CompanyID,
		record.EventType,
		record.JournalEntryID,
		record.Outcome,
		record.ReceivedAt,
	)
	if err != nil {
		r.logger.Error("Failed to claim event", "event_id", record.EventID, "error", err)
		return false, fmt.Errorf("failed to claim event %s: %w", record.EventID, err)
	}

	return result.RowsAffected() > 0, nil
}

// Exists reports whether a committed record exists for the eventId
func (r *EventLogRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM event_log WHERE event_id = $1)
	`

	var exists bool
	if err := r.querier.QueryRow(ctx, query, eventID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check event log record", "event_id", eventID, "error", err)
		return false, fmt.Errorf("failed to check event log record: %w", err)
	}

	return exists, nil
}

// GetByEventID retrieves the record for an eventId.
// Returns ErrRecordNotFound if the event was never claimed.
func (r *EventLogRepository) GetByEventID(ctx context.Context, eventID string) (*event.LogRecord, error) {
	query := `
		SELECT event_id, company_id, event_type, journal_entry_id, outcome, received_at
		FROM event_log
		WHERE event_id = $1
	`

	var record event.LogRecord
	err := r.querier.QueryRow(ctx, query, eventID).Scan(
		&record.EventID,
		&record.CompanyID,
		&record.EventType,
		&record.JournalEntryID,
		&record.Outcome,
		&record.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, event.ErrRecordNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get event log record", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to get event log record: %w", err)
	}

	return &record, nil
}
