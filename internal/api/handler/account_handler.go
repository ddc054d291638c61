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

// AccountHandler handles HTTP requests for chart-of-accounts operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create handles creation of a new account
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req.CompanyID, req.Code, req.Name, ledger.AccountType(req.Type))
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyAccountCode) || errors.Is(err, ledger.ErrEmptyAccountName) || errors.Is(err, ledger.ErrInvalidAccountType) || errors.Is(err, ledger.ErrCompanyNotFound{}) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create account", "company_id", req.CompanyID, "code", req.Code, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, acc)
}

// ListByCompany returns all accounts of a company as a bare JSON array
func (h *AccountHandler) ListByCompany(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || companyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), companyID)
	if err != nil {
		h.logger.Error("Failed to list accounts", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if accounts == nil {
		accounts = []*ledger.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// Deactivate marks an account inactive, returning 404 if it doesn't exist
func (h *AccountHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound{}) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		h.logger.Error("Failed to deactivate account", "account_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
