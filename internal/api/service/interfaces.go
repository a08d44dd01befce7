package service

import (
	"context"
	"time"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/category"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxManager runs a function inside a database transaction.
// Satisfied by persistence.PostgresDB.
type TxManager interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AccountService defines the interface for account operations
type AccountService interface {
	// CreateAccount creates a new account with the given opening balance
	CreateAccount(ctx context.Context, name string, accountType account.Type, openingBalance int64, currency string, creditLimit *int64, dueDate *string) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID
	// Returns ErrAccountNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// ListAccounts retrieves all accounts
	ListAccounts(ctx context.Context) ([]*account.Account, error)

	// DeleteAccount removes an account that has no transactions
	// Returns ErrAccountInUse if any transaction still references it
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	CreateCategory(ctx context.Context, name string, categoryType category.Type, color string) (*category.Category, error)
	ListCategories(ctx context.Context) ([]*category.Category, error)
}

// TransactionInput carries the caller-supplied fields of a transaction
type TransactionInput struct {
	AccountID  uuid.UUID
	CategoryID *uuid.UUID
	Amount     int64 // Minor units
	Type       transaction.Type
	Date       time.Time
	Note       string
}

// TransactionService defines the interface for transaction lifecycle operations.
// Every mutation adjusts the owning account balance in the same database
// transaction as the row write.
type TransactionService interface {
	// CreateTransaction records a transaction and applies its balance effect.
	// Transfer-typed input is rejected; transfers go through TransferService.
	CreateTransaction(ctx context.Context, input TransactionInput) (*transaction.Transaction, error)

	// GetTransactionByID retrieves a transaction by its ID
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)

	// UpdateTransaction reverses the old balance effect, overwrites the row,
	// and applies the new effect. Returns ErrTransferImmutable for transfer rows.
	UpdateTransaction(ctx context.Context, id uuid.UUID, input TransactionInput) (*transaction.Transaction, error)

	// DeleteTransaction reverses the balance effect and removes the row.
	// Returns ErrTransferImmutable for transfer rows.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// ListTransactions retrieves transactions matching the filter, newest first
	ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// TransferInput carries the caller-supplied fields of a transfer
type TransferInput struct {
	SourceAccountID uuid.UUID
	TargetAccountID uuid.UUID
	Amount          int64 // Minor units
	Date            time.Time
}

// TransferService moves money between two accounts atomically
type TransferService interface {
	// Transfer subtracts from the source, adds to the target, and records a
	// single transfer-typed transaction against the source account
	Transfer(ctx context.Context, input TransferInput) (*transaction.Transaction, error)
}

// DashboardStats is the summary snapshot for the dashboard view
type DashboardStats struct {
	TotalBalance   int64 `json:"total_balance"`
	MonthlyIncome  int64 `json:"monthly_income"`
	MonthlyExpense int64 `json:"monthly_expense"`
}

// TrendBucket aggregates income and expense totals for one year-month period
type TrendBucket struct {
	Period  string `json:"period"` // "YYYY-MM"
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// ReportService defines the interface for reporting queries
type ReportService interface {
	// Dashboard returns the all-time balance total plus income and expense
	// sums for the given range. A nil start defaults to the first day of the
	// current month.
	Dashboard(ctx context.Context, start, end *time.Time) (*DashboardStats, error)

	// MonthlyTrend returns per-month income and expense totals, oldest first
	MonthlyTrend(ctx context.Context) ([]TrendBucket, error)
}
