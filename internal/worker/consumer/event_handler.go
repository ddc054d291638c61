// Package consumer bridges the Kafka transport to the ingestion service and
// decides the fate of each delivery: acknowledge, retry, or dead-letter.
package consumer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/config"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/messaging/producers"
	"github.com/cashflow-dev/cashflow-backend/internal/worker/service"
)

// EventHandler processes ledger event deliveries fetched from Kafka.
//
// Error policy:
//   - permanent errors (malformed envelope, unknown type or schema version)
//     go to the DLQ and the offset commits; redelivering bad bytes can never
//     succeed
//   - a missing journal entry is retried in-process a bounded number of times
//     to cover read-after-write lag, then dead-lettered
//   - anything else is treated as transient: the error propagates, the offset
//     stays uncommitted, and the broker redelivers
type EventHandler struct {
	ingestion   service.IngestionService
	dlq         producers.DeadLetterPublisher
	logger      *slog.Logger
	maxAttempts int
	backoff     time.Duration
}

func NewEventHandler(
	ingestion service.IngestionService,
	dlq producers.DeadLetterPublisher,
	cfg *config.IngestionConfig,
	logger *slog.Logger,
) *EventHandler {
	return &EventHandler{
		ingestion:   ingestion,
		dlq:         dlq,
		logger:      logger,
		maxAttempts: cfg.MaxRetryAttempts,
		backoff:     cfg.RetryBackoff,
	}
}

// HandleMessage implements consumers.MessageHandler
func (h *EventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	return h.Process(ctx, string(key), value)
}

// Process runs one delivery through the ingestion service and applies the
// error policy. A nil return acknowledges the delivery.
func (h *EventHandler) Process(ctx context.Context, key string, raw []byte) error {
	for attempt := 1; ; attempt++ {
		outcome, err := h.ingestion.HandleDelivery(ctx, raw)
		if err == nil {
			h.logger.Debug("Delivery processed", "key", key, "outcome", string(outcome))
			return nil
		}

		if isPermanent(err) {
			h.logger.Error("Permanently rejecting delivery", "key", key, "error", err)
			h.deadLetter(ctx, key, raw, err.Error())
			return nil
		}

		if errors.Is(err, ledger.ErrEntryNotFound{}) {
			if attempt < h.maxAttempts {
				h.logger.Warn("Journal entry not found yet, retrying delivery",
					"key", key,
					"attempt", attempt,
					"max_attempts", h.maxAttempts,
					"error", err,
				)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(h.backoff):
				}
				continue
			}
			h.logger.Error("Journal entry still missing after retries, dead-lettering delivery",
				"key", key,
				"attempts", attempt,
				"error", err,
			)
			h.deadLetter(ctx, key, raw, err.Error())
			return nil
		}

		// Transient failure: leave the offset uncommitted and let the broker
		// redeliver. The aborted transaction left no trace, so the replay is
		// safe.
		h.logger.Error("Transient failure processing delivery, will be redelivered", "key", key, "error", err)
		return err
	}
}

// isPermanent reports whether redelivering these bytes could ever succeed
func isPermanent(err error) bool {
	return errors.Is(err, event.ErrMalformedEnvelope) ||
		errors.Is(err, event.ErrUnknownEventType{}) ||
		errors.Is(err, event.ErrUnknownSchemaVersion{})
}

func (h *EventHandler) deadLetter(ctx context.Context, key string, raw []byte, reason string) {
	if h.dlq == nil {
		h.logger.Warn("DLQ disabled, dropping rejected delivery", "key", key, "reason", reason)
		return
	}
	if err := h.dlq.PublishToDLQ(ctx, key, raw, reason); err != nil {
		// Best effort: the delivery is still acknowledged so one bad message
		// cannot wedge the partition.
		h.logger.Error("Failed to publish rejected delivery to DLQ", "key", key, "error", err)
	}
}
