package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("amount cannot be negative")
)

// Type defines the kind of transaction
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"

	// TypeTransfer marks the single persisted leg of a transfer, recorded
	// against the source account. Transfer rows are only ever written by the
	// transfer orchestrator.
	TypeTransfer Type = "transfer"
)

// ParseType validates a caller-supplied transaction type string
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeIncome, TypeExpense, TypeTransfer:
		return Type(s), nil
	}
	return "", ErrInvalidTransactionType
}

// EffectKind is the sign a balance mutation carries: income adds, expense
// subtracts. Transfer legs map onto these before touching any balance.
type EffectKind string

const (
	EffectIncome  EffectKind = "income"
	EffectExpense EffectKind = "expense"
)

// Opposite returns the reversing kind, used to undo a previously applied effect
func (k EffectKind) Opposite() EffectKind {
	if k == EffectIncome {
		return EffectExpense
	}
	return EffectIncome
}

// EffectKind maps a transaction type to its balance effect.
// Transfer has no standalone effect kind and yields ErrInvalidTransactionType.
func (t Type) EffectKind() (EffectKind, error) {
	switch t {
	case TypeIncome:
		return EffectIncome, nil
	case TypeExpense:
		return EffectExpense, nil
	}
	return "", ErrInvalidTransactionType
}

// Transaction represents one categorized ledger movement on a single account
type Transaction struct {
	ID         uuid.UUID  `json:"id"`
	AccountID  uuid.UUID  `json:"account_id"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Amount     int64      `json:"amount"` // Minor units, never negative
	Type       Type       `json:"type"`
	Date       time.Time  `json:"date"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// New creates a transaction record with validated type and amount
func New(accountID uuid.UUID, categoryID *uuid.UUID, amount int64, transactionType Type, date time.Time, note string) (*Transaction, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if _, err := ParseType(string(transactionType)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Transaction{
		ID:         uuid.New(),
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     amount,
		Type:       transactionType,
		Date:       date,
		Note:       note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
