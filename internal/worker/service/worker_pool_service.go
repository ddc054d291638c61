package service

import (
	"context"
	"log/slog"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/event"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolIngestionService wraps an IngestionService with a bounded worker
// pool so a flood of deliveries cannot exhaust database connections.
type WorkerPoolIngestionService struct {
	baseService IngestionService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

type deliveryResult struct {
	outcome event.Outcome
	err     error
}

func NewWorkerPoolIngestionService(
	baseService IngestionService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolIngestionService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolIngestionService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// HandleDelivery submits the delivery to the worker pool and waits for its
// result, preserving the caller's synchronous acknowledgment semantics.
func (s *WorkerPoolIngestionService) HandleDelivery(ctx context.Context, raw []byte) (event.Outcome, error) {
	resultChan := make(chan deliveryResult, 1)

	// Copy the body so the caller may reuse its buffer after we return
	rawCopy := make([]byte, len(raw))
	copy(rawCopy, raw)

	err := s.pool.Submit(func() {
		outcome, err := s.baseService.HandleDelivery(ctx, rawCopy)
		resultChan <- deliveryResult{outcome: outcome, err: err}
	})
	if err != nil {
		s.logger.Error("Failed to submit delivery to worker pool", "error", err)
		return "", err
	}

	result := <-resultChan
	return result.outcome, result.err
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolIngestionService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolIngestionService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolIngestionService) Capacity() int {
	return s.pool.Cap()
}
