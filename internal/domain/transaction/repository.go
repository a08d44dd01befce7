package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListFilter narrows and pages a transaction listing.
// Both date bounds are inclusive and optional.
type ListFilter struct {
	Start  *time.Time
	End    *time.Time
	Offset int
	Limit  int
}

// PeriodTypeSum is one aggregation row: the summed amount for a
// (year-month period, transaction type) pair.
type PeriodTypeSum struct {
	Period string // "YYYY-MM"
	Type   Type
	Total  int64
}

// Repository manages transaction persistence and aggregation queries
type Repository interface {
	Create(ctx context.Context, transaction *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns transactions matching the filter, newest date first
	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	// ExistsByAccountID reports whether any transaction references the account
	ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error)

	// SumAmounts totals amounts of the given type within the optional
	// inclusive date range. Missing rows sum to zero.
	SumAmounts(ctx context.Context, transactionType Type, start, end *time.Time) (int64, error)

	// GroupByPeriodAndType sums income and expense amounts per year-month
	// period, ordered by period ascending
	GroupByPeriodAndType(ctx context.Context) ([]PeriodTypeSum, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrTransactionNotFound indicates missing transaction
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}

// ErrTransferImmutable indicates an attempt to update or delete a
// transfer-typed transaction through the generic lifecycle path. Transfer legs
// have no opposite effect kind, so their reversal is undefined there.
type ErrTransferImmutable struct {
	TransactionID uuid.UUID
}

func (e ErrTransferImmutable) Error() string {
	return "transfer transactions cannot be updated or deleted: " + e.TransactionID.String()
}
