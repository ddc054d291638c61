package service

// In-memory implementation of the storage contract used by the ingestion
// tests. A single mutex serializes transactions and a map snapshot provides
// rollback, giving the same atomicity guarantees the PostgreSQL layer does.

import (
	"context"
	"sync"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/summary"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type memStore struct {
	mu        sync.Mutex
	records   map[string]event.LogRecord
	entries   map[int64]*ledger.JournalEntry
	accounts  map[int64]*ledger.Account
	summaries map[string]*summary.DailySummary

	nextEntryID   int64
	nextAccountID int64

	// Injectable failures
	failApplyDelta error
}

func newMemStore() *memStore {
	return &memStore{
		records:   make(map[string]event.LogRecord),
		entries:   make(map[int64]*ledger.JournalEntry),
		accounts:  make(map[int64]*ledger.Account),
		summaries: make(map[string]*summary.DailySummary),
	}
}

func summaryKey(companyID int64, date time.Time) string {
	return date.Format("2006-01-02") + "/" + decimal.NewFromInt(companyID).String()
}

// ExecuteTx serializes transactions behind the mutex and restores a snapshot
// of all mutable state if fn fails, so a failed transaction leaves no trace.
func (m *memStore) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	recordsBackup := make(map[string]event.LogRecord, len(m.records))
	for k, v := range m.records {
		recordsBackup[k] = v
	}
	summariesBackup := make(map[string]*summary.DailySummary, len(m.summaries))
	for k, v := range m.summaries {
		copied := *v
		summariesBackup[k] = &copied
	}

	if err := fn(nil); err != nil {
		m.records = recordsBackup
		m.summaries = summariesBackup
		return err
	}
	return nil
}

func (m *memStore) addAccount(companyID int64, code string, accountType ledger.AccountType) *ledger.Account {
	m.nextAccountID++
	acc := &ledger.Account{
		ID:        m.nextAccountID,
		CompanyID: companyID,
		Code:      code,
		Name:      "Account " + code,
		Type:      accountType,
		Active:    true,
	}
	m.accounts[acc.ID] = acc
	return acc
}

func (m *memStore) addEntry(entry *ledger.JournalEntry) *ledger.JournalEntry {
	m.nextEntryID++
	entry.ID = m.nextEntryID
	m.entries[entry.ID] = entry
	return entry
}

func (m *memStore) summaryFor(companyID int64, date time.Time) *summary.DailySummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summaries[summaryKey(companyID, date)]
}

// --- event.LogRepository ---

type memEventLogRepo struct{ store *memStore }

func (r *memEventLogRepo) TryClaim(ctx context.Context, record *event.LogRecord) (bool, error) {
	if _, exists := r.store.records[record.EventID]; exists {
		return false, nil
	}
	r.store.records[record.EventID] = *record
	return true, nil
}

func (r *memEventLogRepo) Exists(ctx context.Context, eventID string) (bool, error) {
	_, exists := r.store.records[eventID]
	return exists, nil
}

func (r *memEventLogRepo) GetByEventID(ctx context.Context, eventID string) (*event.LogRecord, error) {
	record, exists := r.store.records[eventID]
	if !exists {
		return nil, event.ErrRecordNotFound{EventID: eventID}
	}
	return &record, nil
}

func (r *memEventLogRepo) WithTx(tx pgx.Tx) event.LogRepository { return r }

// --- ledger.EntryRepository ---

type memEntryRepo struct{ store *memStore }

func (r *memEntryRepo) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	r.store.addEntry(entry)
	return nil
}

func (r *memEntryRepo) GetByID(ctx context.Context, id int64) (*ledger.JournalEntry, error) {
	entry, ok := r.store.entries[id]
	if !ok {
		return nil, ledger.ErrEntryNotFound{EntryID: id}
	}
	return entry, nil
}

func (r *memEntryRepo) WithTx(tx pgx.Tx) ledger.EntryRepository { return r }

// --- ledger.AccountRepository ---

type memAccountRepo struct{ store *memStore }

func (r *memAccountRepo) Create(ctx context.Context, acc *ledger.Account) error {
	r.store.nextAccountID++
	acc.ID = r.store.nextAccountID
	r.store.accounts[acc.ID] = acc
	return nil
}

func (r *memAccountRepo) GetByID(ctx context.Context, id int64) (*ledger.Account, error) {
	acc, ok := r.store.accounts[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound{AccountID: id}
	}
	return acc, nil
}

func (r *memAccountRepo) ListByCompany(ctx context.Context, companyID int64) ([]*ledger.Account, error) {
	var accounts []*ledger.Account
	for _, acc := range r.store.accounts {
		if acc.CompanyID == companyID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (r *memAccountRepo) GetTypes(ctx context.Context, ids []int64) (map[int64]ledger.AccountType, error) {
	types := make(map[int64]ledger.AccountType, len(ids))
	for _, id := range ids {
		if acc, ok := r.store.accounts[id]; ok {
			types[id] = acc.Type
		}
	}
	return types, nil
}

func (r *memAccountRepo) Deactivate(ctx context.Context, id int64) error {
	acc, ok := r.store.accounts[id]
	if !ok {
		return ledger.ErrAccountNotFound{AccountID: id}
	}
	acc.Active = false
	return nil
}

func (r *memAccountRepo) WithTx(tx pgx.Tx) ledger.AccountRepository { return r }

// --- summary.Repository ---

type memSummaryRepo struct{ store *memStore }

func (r *memSummaryRepo) Get(ctx context.Context, companyID int64, date time.Time) (*summary.DailySummary, error) {
	return r.store.summaries[summaryKey(companyID, date)], nil
}

func (r *memSummaryRepo) ApplyDelta(ctx context.Context, delta summary.Delta) error {
	if r.store.failApplyDelta != nil {
		return r.store.failApplyDelta
	}

	key := summaryKey(delta.CompanyID, delta.Date)
	s, ok := r.store.summaries[key]
	if !ok {
		s = &summary.DailySummary{
			CompanyID:    delta.CompanyID,
			Date:         delta.Date,
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
		}
		r.store.summaries[key] = s
	}
	s.TotalIncome = s.TotalIncome.Add(delta.Income)
	s.TotalExpense = s.TotalExpense.Add(delta.Expense)
	return nil
}

func (r *memSummaryRepo) SumRange(ctx context.Context, companyID int64, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	income := decimal.Zero
	expense := decimal.Zero
	for _, s := range r.store.summaries {
		if s.CompanyID != companyID {
			continue
		}
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		income = income.Add(s.TotalIncome)
		expense = expense.Add(s.TotalExpense)
	}
	return income, expense, nil
}

func (r *memSummaryRepo) WithTx(tx pgx.Tx) summary.Repository { return r }
