package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustBalance atomically adds delta (which may be negative) to the
	// account balance. Returns false when no account matches the id; this is
	// not an error so callers can decide how to treat the miss.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta int64) (bool, error)

	// SumBalances returns the sum of all account balances in minor units
	SumBalances(ctx context.Context) (int64, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID uuid.UUID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	if t.AccountID == uuid.Nil {
		return true
	}
	return e.AccountID == t.AccountID
}

// ErrAccountInUse indicates the account still has transactions referencing it
type ErrAccountInUse struct {
	AccountID uuid.UUID
}

func (e ErrAccountInUse) Error() string {
	return "account has existing transactions: " + e.AccountID.String()
}
