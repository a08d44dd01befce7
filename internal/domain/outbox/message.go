package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/fintrack-ledger/internal/domain/event"
)

// Status defines message publishing states
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusProcessed       Status = "PROCESSED"
	StatusFailedToPublish Status = "FAILED_TO_PUBLISH"
)

// Message stages a ledger event for reliable publishing. It is written in the
// same database transaction as the mutation it describes.
type Message struct {
	ID            int64           `json:"id"`
	EventID       uuid.UUID       `json:"event_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Payload       json.RawMessage `json:"payload"`
	Status        Status          `json:"status"`
	Attempts      int             `json:"attempts"`
	CreatedAt     time.Time       `json:"created_at"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

func NewMessage(ev *event.LedgerEvent) (*Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:   ev.EventID,
		AccountID: ev.AccountID,
		Payload:   payload,
		Status:    StatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

// GetLedgerEvent extracts the ledger event from the payload
func (m *Message) GetLedgerEvent() (*event.LedgerEvent, error) {
	var ev event.LedgerEvent
	if err := json.Unmarshal(m.Payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
