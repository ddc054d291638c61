// Package event defines the event envelope carried by the transport and the
// append-only event log that backs the ingestion dedup gate.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Known event types and schema versions
const (
	TypeJournalEntryCreated = "journal.entry.created"

	SchemaVersionV1 = "v1"
)

var (
	ErrMalformedEnvelope = errors.New("malformed event envelope")
	ErrMissingEventID    = errors.New("envelope eventId is required")
	ErrMissingCompanyID  = errors.New("envelope companyId is required")
)

// Envelope is the wire representation of a single logical event occurrence.
// A given eventId denotes exactly one occurrence regardless of how many times
// the transport delivers it.
type Envelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	SchemaVersion string          `json:"schemaVersion"`
	OccurredAt    time.Time       `json:"occurredAt"`
	CompanyID     int64           `json:"companyId"`
	Source        string          `json:"source"`
	Payload       json.RawMessage `json:"payload"`
}

// JournalEntryCreatedPayload is the payload for "journal.entry.created" events
type JournalEntryCreatedPayload struct {
	JournalEntryID int64           `json:"journalEntryId"`
	CompanyID      int64           `json:"companyId"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
}

// DecodeEnvelope parses raw delivery bytes into a validated envelope.
// Any failure here is permanent for these bytes: redelivering them can never
// succeed.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Validate checks the envelope's required fields and that this worker version
// understands the event type and schema version.
func (e *Envelope) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: %w", ErrMalformedEnvelope, ErrMissingEventID)
	}
	if e.CompanyID <= 0 {
		return fmt.Errorf("%w: %w", ErrMalformedEnvelope, ErrMissingCompanyID)
	}
	if e.EventType != TypeJournalEntryCreated {
		return ErrUnknownEventType{Type: e.EventType}
	}
	if e.SchemaVersion != SchemaVersionV1 {
		return ErrUnknownSchemaVersion{Version: e.SchemaVersion}
	}
	return nil
}

// JournalEntryCreated decodes the payload of a "journal.entry.created" envelope
func (e *Envelope) JournalEntryCreated() (*JournalEntryCreatedPayload, error) {
	var payload JournalEntryCreatedPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid journal.entry.created payload: %v", ErrMalformedEnvelope, err)
	}
	if payload.JournalEntryID <= 0 {
		return nil, fmt.Errorf("%w: payload journalEntryId is required", ErrMalformedEnvelope)
	}
	return &payload, nil
}

// ErrUnknownEventType indicates an event type this worker version does not handle
type ErrUnknownEventType struct {
	Type string
}

func (e ErrUnknownEventType) Error() string {
	return "unknown event type: " + e.Type
}

// Is implements the errors.Is interface for ErrUnknownEventType
func (e ErrUnknownEventType) Is(target error) bool {
	_, ok := target.(ErrUnknownEventType)
	return ok
}

// ErrUnknownSchemaVersion indicates a schema version this worker version does not handle
type ErrUnknownSchemaVersion struct {
	Version string
}

func (e ErrUnknownSchemaVersion) Error() string {
	return "unknown schema version: " + e.Version
}

// Is implements the errors.Is interface for ErrUnknownSchemaVersion
func (e ErrUnknownSchemaVersion) Is(target error) bool {
	_, ok := target.(ErrUnknownSchemaVersion)
	return ok
}
