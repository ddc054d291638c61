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

// CompanyHandler handles HTTP requests for company operations
type CompanyHandler struct {
	companyService service.CompanyService
	logger         *slog.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(logger *slog.Logger, companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// Create handles creation of a new company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyCompanyName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create company", "name", req.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetByID retrieves a company, returning 404 if it doesn't exist
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrCompanyNotFound{}) {
			c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
			return
		}
		h.logger.Error("Failed to get company", "company_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, company)
}
