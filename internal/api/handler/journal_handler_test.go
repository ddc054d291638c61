package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockJournalService mocks service.JournalService
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, companyID int64, date time.Time, description string, lines []ledger.JournalLine) (*ledger.JournalEntry, error) {
	args := m.Called(ctx, companyID, date, description, lines)
	if entry := args.Get(0); entry != nil {
		return entry.(*ledger.JournalEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, id int64) (*ledger.JournalEntry, error) {
	args := m.Called(ctx, id)
	if entry := args.Get(0); entry != nil {
		return entry.(*ledger.JournalEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func journalRouter(svc *MockJournalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(testHandlerLogger(), svc)
	r := gin.New()
	r.POST("/journal-entries", h.Create)
	r.GET("/journal-entries/:id", h.GetByID)
	return r
}

func TestJournalHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		created := &ledger.JournalEntry{
			ID:        42,
			CompanyID: 1,
			Date:      time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Lines: []ledger.JournalLine{
				{ID: 1, JournalEntryID: 42, AccountID: 4, Credit: decimal.NewFromInt(100)},
				{ID: 2, JournalEntryID: 42, AccountID: 1, Debit: decimal.NewFromInt(100)},
			},
		}
		svc.On("CreateEntry", mock.Anything, int64(1), mock.AnythingOfType("time.Time"), "consulting", mock.MatchedBy(func(lines []ledger.JournalLine) bool {
			return len(lines) == 2 && lines[0].AccountID == 4 && lines[0].Credit.Equal(decimal.NewFromInt(100))
		})).Return(created, nil).Once()

		body := `{"companyId":1,"date":"2026-08-31T00:00:00Z","description":"consulting","lines":[{"accountId":4,"debit":0,"credit":100},{"accountId":1,"debit":100,"credit":0}]}`
		req, _ := http.NewRequest(http.MethodPost, "/journal-entries", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, float64(42), resp["id"])
		svc.AssertExpectations(t)
	})

	t.Run("RejectsFewerThanTwoLines", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		body := `{"companyId":1,"date":"2026-08-31T00:00:00Z","lines":[{"accountId":4,"credit":100}]}`
		req, _ := http.NewRequest(http.MethodPost, "/journal-entries", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnbalancedEntryGives400", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		svc.On("CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, ledger.ErrUnbalancedEntry{TotalDebit: decimal.NewFromInt(90), TotalCredit: decimal.NewFromInt(100)}).Once()

		body := `{"companyId":1,"date":"2026-08-31T00:00:00Z","lines":[{"accountId":4,"credit":100},{"accountId":1,"debit":90}]}`
		req, _ := http.NewRequest(http.MethodPost, "/journal-entries", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "unbalanced")
	})

	t.Run("UnknownAccountGives400", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		svc.On("CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, ledger.ErrAccountNotFound{AccountID: 77}).Once()

		body := `{"companyId":1,"date":"2026-08-31T00:00:00Z","lines":[{"accountId":77,"credit":100},{"accountId":1,"debit":100}]}`
		req, _ := http.NewRequest(http.MethodPost, "/journal-entries", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestJournalHandler_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		svc.On("GetEntry", mock.Anything, int64(42)).
			Return(&ledger.JournalEntry{ID: 42, CompanyID: 1}, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/journal-entries/42", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		svc.On("GetEntry", mock.Anything, int64(99)).
			Return(nil, ledger.ErrEntryNotFound{EntryID: 99}).Once()

		req, _ := http.NewRequest(http.MethodGet, "/journal-entries/99", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := new(MockJournalService)
		router := journalRouter(svc)

		req, _ := http.NewRequest(http.MethodGet, "/journal-entries/abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
