package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/summary"
	"github.com/cashflow-dev/cashflow-backend/internal/worker/aggregator"
	"github.com/jackc/pgx/v5"
)

// IngestionServiceImpl implements the claim-and-apply protocol: the event log
// insert and the daily summary mutation commit as one transaction, so the
// effect of an eventId is applied at most once no matter how often or how
// concurrently it is delivered.
type IngestionServiceImpl struct {
	tx        TxRunner
	eventLog  event.LogRepository
	entries   ledger.EntryRepository
	accounts  ledger.AccountRepository
	summaries summary.Repository
	logger    *slog.Logger
}

func NewIngestionService(
	tx TxRunner,
	eventLog event.LogRepository,
	entries ledger.EntryRepository,
	accounts ledger.AccountRepository,
	summaries summary.Repository,
	logger *slog.Logger,
) IngestionService {
	return &IngestionServiceImpl{
		tx:        tx,
		eventLog:  eventLog,
		entries:   entries,
		accounts:  accounts,
		summaries: summaries,
		logger:    logger,
	}
}

// HandleDelivery handles the core logic for processing one delivery.
//
// Decode and validation failures are permanent for the delivered bytes and are
// returned before any storage interaction. Storage failures abort the whole
// transaction, including the claim, so the transport's redelivery converges to
// a correct outcome on a later attempt.
func (s *IngestionServiceImpl) HandleDelivery(ctx context.Context, raw []byte) (event.Outcome, error) {
	env, err := event.DecodeEnvelope(raw)
	if err != nil {
		return "", err
	}

	payload, err := env.JournalEntryCreated()
	if err != nil {
		return "", err
	}

	logger := s.logger.With("event_id", env.EventID, "company_id", env.CompanyID)
	logger.Info("Processing event delivery", "event_type", env.EventType, "journal_entry_id", payload.JournalEntryID)

	var outcome event.Outcome
	err = s.tx.ExecuteTx(ctx, func(tx pgx.Tx) error {
		eventLog := s.eventLog.WithTx(tx)

		record := event.NewLogRecord(env, payload.JournalEntryID)
		claimed, err := eventLog.TryClaim(ctx, record)
		if err != nil {
			return err
		}

		if !claimed {
			outcome = event.OutcomeDuplicateSkipped
			s.checkPayloadMismatch(ctx, eventLog, env.EventID, payload.JournalEntryID, logger)
			logger.Info("Duplicate event detected, skipping (idempotent)")
			return nil
		}

		entry, err := s.entries.WithTx(tx).GetByID(ctx, payload.JournalEntryID)
		if err != nil {
			// Rolls back the claim: a delivery that cannot complete
			// must leave no trace.
			return err
		}

		accountTypes, err := s.accounts.WithTx(tx).GetTypes(ctx, entry.AccountIDs())
		if err != nil {
			return err
		}

		delta, err := aggregator.ComputeDelta(entry, accountTypes)
		if err != nil {
			return err
		}

		if err := s.summaries.WithTx(tx).ApplyDelta(ctx, delta); err != nil {
			return err
		}

		outcome = event.OutcomeApplied
		logger.Info("Updating DailySummary",
			"date", delta.Date.Format("2006-01-02"),
			"income_delta", delta.Income.String(),
			"expense_delta", delta.Expense.String(),
		)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to process event %s: %w", env.EventID, err)
	}

	return outcome, nil
}

// checkPayloadMismatch surfaces redeliveries whose payload references a
// different journal entry than the stored record. The delivery is still a
// no-op; the warning exists for operator visibility of buggy producers.
func (s *IngestionServiceImpl) checkPayloadMismatch(ctx context.Context, eventLog event.LogRepository, eventID string, journalEntryID int64, logger *slog.Logger) {
	existing, err := eventLog.GetByEventID(ctx, eventID)
	if err != nil {
		logger.Warn("Could not load existing event log record for duplicate", "error", err)
		return
	}
	if existing.JournalEntryID != journalEntryID {
		logger.Warn("Duplicate delivery references a different journal entry",
			"recorded_journal_entry_id", existing.JournalEntryID,
			"delivered_journal_entry_id", journalEntryID,
		)
	}
}
