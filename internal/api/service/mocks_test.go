package service

import (
	"context"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/summary"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository mocks ledger.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *ledger.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id int64) (*ledger.Company, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*ledger.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAccountRepository mocks ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *ledger.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if acc := args.Get(0); acc != nil {
		return acc.(*ledger.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) ListByCompany(ctx context.Context, companyID int64) ([]*ledger.Account, error) {
	args := m.Called(ctx, companyID)
	if accs := args.Get(0); accs != nil {
		return accs.([]*ledger.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) GetTypes(ctx context.Context, ids []int64) (map[int64]ledger.AccountType, error) {
	args := m.Called(ctx, ids)
	if types := args.Get(0); types != nil {
		return types.(map[int64]ledger.AccountType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) ledger.AccountRepository {
	return m
}

// MockEntryRepository mocks ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *ledger.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id int64) (*ledger.JournalEntry, error) {
	args := m.Called(ctx, id)
	if entry := args.Get(0); entry != nil {
		return entry.(*ledger.JournalEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepository) WithTx(tx pgx.Tx) ledger.EntryRepository {
	return m
}

// MockSummaryRepository mocks summary.Repository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Get(ctx context.Context, companyID int64, date time.Time) (*summary.DailySummary, error) {
	args := m.Called(ctx, companyID, date)
	if s := args.Get(0); s != nil {
		return s.(*summary.DailySummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSummaryRepository) ApplyDelta(ctx context.Context, delta summary.Delta) error {
	args := m.Called(ctx, delta)
	return args.Error(0)
}

func (m *MockSummaryRepository) SumRange(ctx context.Context, companyID int64, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockSummaryRepository) WithTx(tx pgx.Tx) summary.Repository {
	return m
}

// MockEventPublisher mocks producers.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEntryCreated(ctx context.Context, entry *ledger.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// fakeTxRunner runs the function directly, outside any real transaction
type fakeTxRunner struct {
	err error // returned instead of running fn when set
}

func (f *fakeTxRunner) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}
