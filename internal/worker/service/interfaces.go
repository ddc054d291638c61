package service

import (
	"context"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/jackc/pgx/v5"
)

// IngestionService processes one transport delivery. It is safe to invoke
// concurrently and holds no state across invocations; every decision is
// rederived from durable storage.
type IngestionService interface {
	// HandleDelivery decodes the raw delivery body and applies its event
	// exactly once. Redelivery of an already-claimed eventId returns
	// OutcomeDuplicateSkipped and is a successful no-op.
	HandleDelivery(ctx context.Context, raw []byte) (event.Outcome, error)
}

// TxRunner executes a function inside a single storage transaction. The
// function either commits as a whole or leaves no trace.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
