package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/messaging/producers"
	"github.com/jackc/pgx/v5"
)

// JournalServiceImpl implements the JournalService interface
type JournalServiceImpl struct {
	tx          TxRunner
	entryRepo   ledger.EntryRepository
	accountRepo ledger.AccountRepository
	producer    producers.EventPublisher
	logger      *slog.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(
	logger *slog.Logger,
	tx TxRunner,
	entryRepo ledger.EntryRepository,
	accountRepo ledger.AccountRepository,
	producer producers.EventPublisher,
) JournalService {
	return &JournalServiceImpl{
		tx:          tx,
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateEntry validates the entry, persists it with its lines in one
// transaction, and publishes a journal.entry.created event after the commit.
// The journal row is the source of truth; if the publish fails the entry
// stands and the event can be re-emitted later.
func (s *JournalServiceImpl) CreateEntry(ctx context.Context, companyID int64, date time.Time, description string, lines []ledger.JournalLine) (*ledger.JournalEntry, error) {
	entry, err := ledger.NewJournalEntry(companyID, date, description, lines)
	if err != nil {
		return nil, err
	}

	err = s.tx.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := s.accountRepo.WithTx(tx)
		for _, accountID := range entry.AccountIDs() {
			acc, err := accounts.GetByID(ctx, accountID)
			if err != nil {
				return err
			}
			if acc.CompanyID != companyID {
				// Another company's account is invisible here
				return ledger.ErrAccountNotFound{AccountID: accountID}
			}
			if !acc.Active {
				return ledger.ErrAccountInactive{AccountID: accountID}
			}
		}

		return s.entryRepo.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Journal entry created",
		"journal_entry_id", entry.ID,
		"company_id", entry.CompanyID,
		"lines", len(entry.Lines),
	)

	if err := s.producer.PublishEntryCreated(ctx, entry); err != nil {
		// The entry committed; surface the publish failure in logs only so
		// the client sees the write it asked for.
		s.logger.Error("Failed to publish journal.entry.created event",
			"journal_entry_id", entry.ID,
			"company_id", entry.CompanyID,
			"error", err,
		)
	}

	return entry, nil
}

// GetEntry retrieves a journal entry with its lines
func (s *JournalServiceImpl) GetEntry(ctx context.Context, id int64) (*ledger.JournalEntry, error) {
	return s.entryRepo.GetByID(ctx, id)
}
