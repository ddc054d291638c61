package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cashflow-dev/cashflow-backend/internal/api/service"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
)

// JournalHandler handles HTTP requests for journal entry operations
type JournalHandler struct {
	journalService service.JournalService
	logger         *slog.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(logger *slog.Logger, journalService service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// Create records a balanced journal entry and returns it with its assigned id
func (h *JournalHandler) Create(c *gin.Context) {
	var req CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	lines := make([]ledger.JournalLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ledger.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		})
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req.CompanyID, req.Date, req.Description, lines)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnbalancedEntry{}),
			errors.Is(err, ledger.ErrTooFewLines),
			errors.Is(err, ledger.ErrNegativeAmount),
			errors.Is(err, ledger.ErrEmptyLineAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ledger.ErrAccountNotFound{}):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ledger.ErrAccountInactive{}):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create journal entry", "company_id", req.CompanyID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetByID retrieves a journal entry by its id, returning 404 if not found
func (h *JournalHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal entry id"})
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound{}) {
			c.JSON(http.StatusNotFound, gin.H{"error": "journal entry not found"})
			return
		}
		h.logger.Error("Failed to get journal entry", "journal_entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
