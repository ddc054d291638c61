package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/config"
	"github.com/cashflow-dev/cashflow-backend/internal/data/postgres"
	"github.com/cashflow-dev/cashflow-backend/internal/logger"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/messaging/consumers"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/messaging/producers"
	"github.com/cashflow-dev/cashflow-backend/internal/platform/persistence"
	"github.com/cashflow-dev/cashflow-backend/internal/worker/consumer"
	"github.com/cashflow-dev/cashflow-backend/internal/worker/pushapi"
	"github.com/cashflow-dev/cashflow-backend/internal/worker/service"
	"github.com/shopspring/decimal"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Monetary amounts serialize as bare JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize configuration
	cfg, err := config.LoadConfig("worker")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Ingestion Worker",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

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

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	entryRepo := postgres.NewEntryRepository(log, postgresDB)
	eventLogRepo := postgres.NewEventLogRepository(log, postgresDB)
	summaryRepo := postgres.NewSummaryRepository(log, postgresDB)

	// Initialize Kafka consumer
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	// Initialize Kafka DLQ producer
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// dlqProducer is nil when no DLQ topic is configured. Hand the handler a
	// nil interface in that case so it can detect the disabled DLQ.
	var dlqPublisher producers.DeadLetterPublisher
	if dlqProducer != nil {
		dlqPublisher = dlqProducer
	}

	// Initialize ingestion service wrapped in a bounded worker pool
	ingestionService := service.NewIngestionService(
		postgresDB,
		eventLogRepo,
		entryRepo,
		accountRepo,
		summaryRepo,
		log,
	)
	pooledService, err := service.NewWorkerPoolIngestionService(
		ingestionService,
		service.WorkerPoolConfig{Size: cfg.Ingestion.PoolSize},
		log,
	)
	if err != nil {
		log.Error("Failed to initialize worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize the event handler shared by both delivery transports
	eventHandler := consumer.NewEventHandler(pooledService, dlqPublisher, &cfg.Ingestion, log)

	// Initialize push delivery server
	pushServer := pushapi.NewServer(log, cfg, eventHandler)

	// Create error channel for service errors
	errChan := make(chan error, 2)

	// Create wait group for graceful shutdown
	var wg sync.WaitGroup

	// Start Kafka consumer in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting Kafka consumer",
			"topic", cfg.Kafka.EventsTopic,
			"group", cfg.Kafka.ConsumerGroup,
		)
		if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.EventsTopic, cfg.Kafka.ConsumerGroup, eventHandler.HandleMessage); err != nil {
			errChan <- fmt.Errorf("kafka consumer error: %w", err)
		}
	}()

	// Start push delivery server in a goroutine
	go func() {
		log.Info("Starting push delivery server", "port", cfg.Server.Port)
		if err := pushServer.Start(); err != nil {
			errChan <- fmt.Errorf("push server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Stop accepting push deliveries
	if err = pushServer.Stop(shutdownCtx); err != nil {
		log.Error("Error during push server shutdown", "error", err)
	}

	// Drain the worker pool
	log.Info("Shutting down worker pool", "running_workers", pooledService.Running())
	pooledService.Shutdown()

	// Wait for the consumer goroutine to finish
	log.Info("Waiting for services to stop...")
	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()

	select {
	case <-wgChan:
		log.Info("All services stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// Close DLQ Kafka producer
	if dlqProducer != nil { // dlqProducer can be nil if DLQTopic was not configured
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	// Close Kafka consumer
	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Final status
	if serviceErr != nil {
		log.Error("Ingestion Worker shutdown with errors", "error", serviceErr)
	}
	if err != nil {
		log.Error("Ingestion Worker shutdown completed with errors")
	} else {
		log.Info("Ingestion Worker shutdown completed successfully")
	}
}
