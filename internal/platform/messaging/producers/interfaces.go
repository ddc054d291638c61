package producers

import (
	"context"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/segmentio/kafka-go"
)

// EventPublisher emits ledger event envelopes after their source-of-truth
// write has committed
type EventPublisher interface {
	PublishEntryCreated(ctx context.Context, entry *ledger.JournalEntry) error
	Close() error
}

// DeadLetterPublisher handles publishing messages to a Dead Letter Queue
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
