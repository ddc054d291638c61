package event

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// LogRepository manages the append-only event log. The eventId uniqueness
// constraint in durable storage is the concurrency primitive the whole dedup
// guarantee rests on.
type LogRepository interface {
	// TryClaim atomically inserts the record. It returns true if this call
	// claimed the eventId, false if another delivery already holds it. Two
	// concurrent claims for the same eventId never both return true.
	TryClaim(ctx context.Context, record *LogRecord) (bool, error)

	// Exists reports whether a record for the eventId has been committed
	Exists(ctx context.Context, eventID string) (bool, error)

	GetByEventID(ctx context.Context, eventID string) (*LogRecord, error)

	WithTx(tx pgx.Tx) LogRepository
}
