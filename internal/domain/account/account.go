package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName             = errors.New("account name cannot be empty")
	ErrInvalidAccountType    = errors.New("invalid account type")
	ErrInvalidCurrencyFormat = errors.New("currency must be a 3-letter code")
)

// Type classifies an account
type Type string

const (
	TypeBank Type = "bank"
	TypeCash Type = "cash"

	// TypeCredit marks credit-card accounts. Balance always holds the signed
	// asset value: debt is a negative balance, and a transfer into a credit
	// account adds to the balance like any other account.
	TypeCredit Type = "credit"
)

// ParseType validates a caller-supplied account type string
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeBank, TypeCash, TypeCredit:
		return Type(s), nil
	}
	return "", ErrInvalidAccountType
}

// Account represents a ledger account.
// Balance is a derived quantity stored in minor units (cents): it equals the sum
// of signed effects of every transaction referencing the account since creation,
// and is mutated only through the balance ledger.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
	Balance     int64     `json:"balance"` // Minor units
	Currency    string    `json:"currency"`
	CreditLimit *int64    `json:"credit_limit,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"` // Day of month, kept free-form
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates an account with the given opening balance
func New(name string, accountType Type, openingBalance int64, currency string, creditLimit *int64, dueDate *string) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := ParseType(string(accountType)); err != nil {
		return nil, err
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrencyFormat
	}

	now := time.Now()
	return &Account{
		ID:          uuid.New(),
		Name:        name,
		Type:        accountType,
		Balance:     openingBalance,
		Currency:    currency,
		CreditLimit: creditLimit,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
