package service

import (
	"context"

	"github.com/fintrack-ledger/internal/domain/event"
)

// ArchiveService defines the interface for archiving consumed ledger events
type ArchiveService interface {
	ArchiveEvent(ctx context.Context, ev *event.LedgerEvent) error
}
