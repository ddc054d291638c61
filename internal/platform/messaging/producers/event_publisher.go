package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/config"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// LedgerEventProducer publishes journal.entry.created envelopes to the events
// topic. Each publish mints a fresh eventId, so re-publishing the same journal
// entry produces a distinct business event, not a duplicate.
type LedgerEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
	source string
}

// NewLedgerEventProducer creates the events-topic producer and ensures the
// topic exists.
func NewLedgerEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig, source string) (*LedgerEventProducer, error) {
	if cfg.EventsTopic == "" {
		return nil, fmt.Errorf("kafka events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for ledger event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.EventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure events topic %s exists: %w", cfg.EventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.EventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.EventsTopic, "count", len(messages))
			}
		},
	}

	return &LedgerEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.EventsTopic,
		source: source,
	}, nil
}

// PublishEntryCreated wraps the committed journal entry in a v1 envelope and
// writes it keyed by companyId, preserving per-company ordering.
func (p *LedgerEventProducer) PublishEntryCreated(ctx context.Context, entry *ledger.JournalEntry) error {
	totalDebit, totalCredit := entry.Totals()
	payload, err := json.Marshal(event.JournalEntryCreatedPayload{
		JournalEntryID: entry.ID,
		CompanyID:      entry.CompanyID,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal journal.entry.created payload: %w", err)
	}

	envelope := event.Envelope{
		EventID:       uuid.NewString(),
		EventType:     event.TypeJournalEntryCreated,
		SchemaVersion: event.SchemaVersionV1,
		OccurredAt:    time.Now().UTC(),
		CompanyID:     entry.CompanyID,
		Source:        p.source,
		Payload:       payload,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(entry.CompanyID, 10)),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish ledger event",
			"topic", p.topic,
			"event_id", envelope.EventID,
			"journal_entry_id", entry.ID,
			"error", err,
		)
		return fmt.Errorf("failed to publish event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published ledger event",
		"topic", p.topic,
		"event_id", envelope.EventID,
		"journal_entry_id", entry.ID,
	)
	return nil
}

func (p *LedgerEventProducer) Close() error {
	p.logger.Info("Closing ledger event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
