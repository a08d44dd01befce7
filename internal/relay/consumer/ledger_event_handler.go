package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/event"
	"github.com/fintrack-ledger/internal/platform/messaging/producers"
	"github.com/fintrack-ledger/internal/relay/service"
)

// LedgerEventHandler handles incoming ledger event messages from Kafka
type LedgerEventHandler struct {
	archiveService service.ArchiveService
	producer       producers.DeadLetterPublisher
	logger         *slog.Logger
}

// NewLedgerEventHandler creates a new handler
func NewLedgerEventHandler(
	logger *slog.Logger,
	archiveService service.ArchiveService,
	producer producers.DeadLetterPublisher,
) *LedgerEventHandler {
	return &LedgerEventHandler{
		archiveService: archiveService,
		producer:       producer,
		logger:         logger,
	}
}

// HandleMessage processes Kafka messages
func (h *LedgerEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var ev event.LedgerEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal ledger event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	h.logger.Info("Received ledger event for archiving",
		"event_id", ev.EventID.String(),
		"account_id", ev.AccountID.String(),
		"type", string(ev.Type),
		"amount", ev.Amount,
	)

	if err := h.archiveService.ArchiveEvent(ctx, &ev); err != nil {
		h.logger.Error("Failed to archive ledger event",
			"event_id", ev.EventID.String(),
			"account_id", ev.AccountID.String(),
			"error", err,
		)
		return fmt.Errorf("archiving ledger event %s failed: %w", ev.EventID.String(), err)
	}

	h.logger.Info("Successfully archived ledger event", "event_id", ev.EventID.String())
	return nil // Success, commit offset
}
