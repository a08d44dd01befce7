package service

import (
	"context"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/event"
	"github.com/panjf2000/ants/v2"
)

// WorkerPoolArchiveService wraps an ArchiveService with a bounded worker pool
// so a burst of consumed events cannot overwhelm the archive store
type WorkerPoolArchiveService struct {
	baseService ArchiveService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolArchiveService(
	baseService ArchiveService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolArchiveService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolArchiveService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// ArchiveEvent submits the event to the worker pool and waits for the result,
// so the caller keeps at-least-once semantics for offset commits
func (s *WorkerPoolArchiveService) ArchiveEvent(ctx context.Context, ev *event.LedgerEvent) error {
	s.logger.Debug("Submitting ledger event to worker pool",
		"event_id", ev.EventID.String(),
	)

	resultChan := make(chan error, 1)

	// Copy to avoid data races with the caller
	eventCopy := *ev

	err := s.pool.Submit(func() {
		resultChan <- s.baseService.ArchiveEvent(ctx, &eventCopy)
		close(resultChan)
	})
	if err != nil {
		close(resultChan)
		s.logger.Error("Failed to submit ledger event to worker pool",
			"event_id", ev.EventID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown gracefully shuts down the worker pool
func (s *WorkerPoolArchiveService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool
func (s *WorkerPoolArchiveService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool
func (s *WorkerPoolArchiveService) Capacity() int {
	return s.pool.Cap()
}
