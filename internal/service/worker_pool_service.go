package service

import (
	"context"
	"log/slog"

	"github.com/monocle-wallet-service/internal/domain/shared"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolCreditService bounds the number of credit workflows running
// concurrently. Each invocation still blocks until its own terminal outcome.
type WorkerPoolCreditService struct {
	baseService CreditService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolCreditService(
	baseService CreditService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolCreditService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolCreditService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// Process submits the claim to the worker pool and waits for its outcome.
// If the pool rejects the submission the claim is failed as unavailable
// rather than processed inline, keeping the concurrency bound honest.
func (s *WorkerPoolCreditService) Process(ctx context.Context, claim *shared.PaymentClaim) *CreditOutcome {
	logger := s.logger
	if claim.CorrelationID != "" {
		logger = s.logger.With("correlation_id", claim.CorrelationID)
	}

	resultChan := make(chan *CreditOutcome, 1)

	// Copy the claim to avoid data races with the caller
	claimCopy := *claim

	err := s.pool.Submit(func() {
		resultChan <- s.baseService.Process(ctx, &claimCopy)
	})
	if err != nil {
		logger.Error("Failed to submit claim to worker pool",
			"reference", claim.Reference,
			"error", err,
		)
		return &CreditOutcome{
			Code:    OutcomeStoreUnavailable,
			Message: "Service is at capacity",
		}
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolCreditService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolCreditService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolCreditService) Capacity() int {
	return s.pool.Cap()
}
