package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cashflow-dev/cashflow-backend/internal/api"
	"github.com/cashflow-dev/cashflow-backend/internal/api/service"
	"github.com/cashflow-dev/cashflow-backend/internal/config"
	"github.com/cashflow-dev/cashflow-backend/internal/data/postgres"
	"github.com/cashflow-dev/cashflow-backend/internal/logger"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/messaging/producers"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/persistence"
	"github.com/shopspring/decimal"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Monetary amounts serialize as bare JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize PostgreSQL with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Apply pending schema migrations
	if err := persistence.RunMigrations(cfg.Postgres.URL, cfg.Postgres.MigrationsPath); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for ledger events
	eventProducer, err := producers.NewLedgerEventProducer(appCtx, log, &cfg.Kafka, cfg.Ingestion.Source)
	if err != nil {
		log.Error("Failed to initialize Kafka event producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepository(log, postgresDB)
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	entryRepo := postgres.NewEntryRepository(log, postgresDB)
	summaryRepo := postgres.NewSummaryRepository(log, postgresDB)

	// Initialize services
	companyService := service.NewCompanyService(companyRepo)
	accountService := service.NewAccountService(accountRepo, companyRepo)
	journalService := service.NewJournalService(log, postgresDB, entryRepo, accountRepo, eventProducer)
	reportService := service.NewReportService(summaryRepo)

	// Initialize REST server
	server := api.NewServer(log, cfg, companyService, accountService, journalService, reportService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
