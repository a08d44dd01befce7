package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/platform/messaging/producers"
)

// EventPublisher publishes staged outbox messages to the event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher over a Kafka producer
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent decodes the staged ledger event, publishes it keyed by account
// so per-account ordering is preserved, and marks the outbox row processed
func (p *EventPublisherImpl) PublishEvent(ctx context.Context, message *outbox.Message) error {
	ev, err := message.GetLedgerEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal ledger event from outbox payload",
			"outbox_id", message.ID, "event_id", message.EventID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	p.logger.Info("Attempting to publish outbox message to event stream",
		"outbox_id", message.ID, "event_id", ev.EventID.String(), "type", string(ev.Type),
	)

	if err := p.producer.Publish(ctx, ev.AccountID.String(), ev); err != nil {
		return fmt.Errorf("failed to publish ledger event %s: %w", ev.EventID.String(), err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		p.logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "event_id", ev.EventID.String(), "error", err,
		)
		return fmt.Errorf("event %s published OK, but failed to mark outbox %d as PROCESSED: %w", ev.EventID.String(), message.ID, err)
	}

	p.logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID, "event_id", ev.EventID.String())
	return nil
}
