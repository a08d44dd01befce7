package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/event"
)

// ArchiveServiceImpl implements the ArchiveService interface on top of the
// event archive repository
type ArchiveServiceImpl struct {
	eventRepo event.Repository
	logger    *slog.Logger
}

// NewArchiveService creates a new archive service
func NewArchiveService(logger *slog.Logger, eventRepo event.Repository) ArchiveService {
	return &ArchiveServiceImpl{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// ArchiveEvent stores a ledger event in the archive. Redelivered events are
// treated as success so the consumer can commit the offset.
func (s *ArchiveServiceImpl) ArchiveEvent(ctx context.Context, ev *event.LedgerEvent) error {
	if err := s.eventRepo.Create(ctx, ev); err != nil {
		if errors.Is(err, event.ErrDuplicateEvent{}) {
			s.logger.Info("Ledger event already archived, skipping",
				"event_id", ev.EventID.String(),
			)
			return nil
		}
		return err
	}

	s.logger.Info("Archived ledger event",
		"event_id", ev.EventID.String(),
		"type", string(ev.Type),
		"account_id", ev.AccountID.String(),
	)
	return nil
}
