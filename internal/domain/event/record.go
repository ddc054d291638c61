package event

import (
	"time"
)

// Outcome is the result of handling one delivery
type Outcome string

const (
	// OutcomeApplied means this delivery won the claim and mutated the aggregate
	OutcomeApplied Outcome = "applied"
	// OutcomeDuplicateSkipped means the eventId was already claimed; the
	// delivery was a safe no-op
	OutcomeDuplicateSkipped Outcome = "duplicate-skipped"
)

// LogRecord is the append-only record of an accepted event. The presence of a
// record for an eventId is the sole source of truth for "already processed".
type LogRecord struct {
	EventID        string    `json:"eventId"`
	CompanyID      int64     `json:"companyId"`
	EventType      string    `json:"eventType"`
	JournalEntryID int64     `json:"journalEntryId"`
	Outcome        Outcome   `json:"processingOutcome"`
	ReceivedAt     time.Time `json:"receivedAt"`
}

// NewLogRecord builds the record the claiming delivery will insert
func NewLogRecord(env *Envelope, journalEntryID int64) *LogRecord {
	return &LogRecord{
		EventID:        env.EventID,
		CompanyID:      env.CompanyID,
		EventType:      env.EventType,
		JournalEntryID: journalEntryID,
		Outcome:        OutcomeApplied,
		ReceivedAt:     time.Now().UTC(),
	}
}

// ErrRecordNotFound indicates a missing event log record
type ErrRecordNotFound struct {
	EventID string
}

func (e ErrRecordNotFound) Error() string {
	return "event log record not found: " + e.EventID
}

// Is implements the errors.Is interface for ErrRecordNotFound
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	if t.EventID == "" {
		return true
	}
	return e.EventID == t.EventID
}
