package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/fintrack-ledger/internal/domain/transaction"
)

// Type identifies what kind of ledger mutation an event describes
type Type string

const (
	TypeTransactionCreated Type = "transaction.created"
	TypeTransactionUpdated Type = "transaction.updated"
	TypeTransactionDeleted Type = "transaction.deleted"
	TypeTransferCompleted  Type = "transfer.completed"
)

// LedgerEvent is emitted for every committed ledger mutation. It is staged in
// the outbox inside the same database transaction as the mutation itself, then
// relayed to the event stream and archived.
type LedgerEvent struct {
	EventID         uuid.UUID        `json:"event_id" bson:"event_id"`
	Type            Type             `json:"type" bson:"type"`
	AccountID       uuid.UUID        `json:"account_id" bson:"account_id"`
	TransactionID   uuid.UUID        `json:"transaction_id" bson:"transaction_id"`
	TransactionType transaction.Type `json:"transaction_type" bson:"transaction_type"`
	Amount          int64            `json:"amount" bson:"amount"`
	OccurredAt      time.Time        `json:"occurred_at" bson:"occurred_at"`
	ArchivedAt      *time.Time       `json:"archived_at,omitempty" bson:"archived_at,omitempty"`
}

// NewLedgerEvent builds an event describing a mutation of the given transaction
func NewLedgerEvent(eventType Type, tr *transaction.Transaction) *LedgerEvent {
	return &LedgerEvent{
		EventID:         uuid.New(),
		Type:            eventType,
		AccountID:       tr.AccountID,
		TransactionID:   tr.ID,
		TransactionType: tr.Type,
		Amount:          tr.Amount,
		OccurredAt:      time.Now().UTC(),
	}
}
