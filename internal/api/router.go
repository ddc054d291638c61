package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/api/handler"
	"github.com/cashflow-dev/cashflow-backend/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	companyHandler *handler.CompanyHandler,
	accountHandler *handler.AccountHandler,
	journalHandler *handler.JournalHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// Companies
	r.POST("/companies", companyHandler.Create)
	r.GET("/companies/:id", companyHandler.GetByID)

	// Chart of accounts
	r.POST("/accounts", accountHandler.Create)
	r.DELETE("/accounts/:id", accountHandler.Deactivate)
	r.GET("/companies/:id/accounts", accountHandler.ListByCompany)

	// Journal entries
	r.POST("/journal-entries", journalHandler.Create)
	r.GET("/journal-entries/:id", journalHandler.GetByID)

	// Reports
	r.GET("/reports/pnl", reportHandler.ProfitAndLoss)

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
