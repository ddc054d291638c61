package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/api/service"
	"github.com/gin-gonic/gin"
)

// dateLayout is the wire format for report range bounds
const dateLayout = "2006-01-02"

// ReportHandler handles HTTP requests for reporting operations
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// ProfitAndLoss serves GET /reports/pnl?companyId=..&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	var query PnLQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters: " + err.Error()})
		return
	}

	from, err := time.Parse(dateLayout, query.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(dateLayout, query.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportService.ProfitAndLoss(c.Request.Context(), query.CompanyID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to compute PnL report", "company_id", query.CompanyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, PnLResponse{
		CompanyID:    report.CompanyID,
		From:         report.From.Format(dateLayout),
		To:           report.To.Format(dateLayout),
		TotalIncome:  report.TotalIncome,
		TotalExpense: report.TotalExpense,
		NetProfit:    report.NetProfit,
	})
}
