package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/fintrack-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so that row writes and
// balance adjustments commit or roll back together
func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tr *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, category_id, amount, type, date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		tr.ID,
		tr.AccountID,
		tr.CategoryID,
		tr.Amount,
		tr.Type,
		tr.Date,
		tr.Note,
		tr.CreatedAt,
		tr.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction", "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, account_id, category_id, amount, type, date, note, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	var tr transaction.Transaction
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&tr.ID,
		&tr.AccountID,
		&tr.CategoryID,
		&tr.Amount,
		&tr.Type,
		&tr.Date,
		&tr.Note,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &tr, nil
}

// Update overwrites the mutable fields of an existing transaction.
// Returns ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) Update(ctx context.Context, tr *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, amount = $3, type = $4, date = $5, note = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.querier.Exec(ctx, query,
		tr.AccountID,
		tr.CategoryID,
		tr.Amount,
		tr.Type,
		tr.Date,
		tr.Note,
		tr.UpdatedAt,
		tr.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction", "id", tr.ID.String(), "error", err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: tr.ID}
	}

	return nil
}

// Delete removes a transaction. Returns ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{TransactionID: id}
	}

	return nil
}

// List retrieves transactions matching the filter, newest date first.
// Date bounds are inclusive; a zero limit means no limit.
func (r *TransactionRepository) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, account_id, category_id, amount, type, date, note, created_at, updated_at
		FROM transactions
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date <= $2)
		ORDER BY date DESC, created_at DESC
		OFFSET $3
		LIMIT NULLIF($4, 0)
	`

	rows, err := r.querier.Query(ctx, query, filter.Start, filter.End, filter.Offset, filter.Limit)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		var tr transaction.Transaction
		err := rows.Scan(
			&tr.ID,
			&tr.AccountID,
			&tr.CategoryID,
			&tr.Amount,
			&tr.Type,
			&tr.Date,
			&tr.Note,
			&tr.CreatedAt,
			&tr.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan transaction", "error", err)
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &tr)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over transactions", "error", err)
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return transactions, nil
}

// ExistsByAccountID reports whether any transaction references the account
func (r *TransactionRepository) ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions WHERE account_id = $1
		)
	`

	var exists bool
	if err := r.querier.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		r.logger.Error("Failed to check transactions for account", "account_id", accountID.String(), "error", err)
		return false, fmt.Errorf("failed to check transactions for account: %w", err)
	}

	return exists, nil
}

// SumAmounts totals amounts of the given type within the optional inclusive
// date range. An empty range sums to zero.
func (r *TransactionRepository) SumAmounts(ctx context.Context, transactionType transaction.Type, start, end *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE type = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
	`

	var total int64
	if err := r.querier.QueryRow(ctx, query, transactionType, start, end).Scan(&total); err != nil {
		r.logger.Error("Failed to sum transaction amounts", "type", string(transactionType), "error", err)
		return 0, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}

	return total, nil
}

// GroupByPeriodAndType sums income and expense amounts per year-month period.
// Transfer rows carry no net effect and are excluded.
func (r *TransactionRepository) GroupByPeriodAndType(ctx context.Context) ([]transaction.PeriodTypeSum, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM') AS period, type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE type IN ('income', 'expense')
		GROUP BY period, type
		ORDER BY period ASC, type ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to group transactions by period", "error", err)
		return nil, fmt.Errorf("failed to group transactions by period: %w", err)
	}
	defer rows.Close()

	var sums []transaction.PeriodTypeSum
	for rows.Next() {
		var s transaction.PeriodTypeSum
		if err := rows.Scan(&s.Period, &s.Type, &s.Total); err != nil {
			r.logger.Error("Failed to scan period sum", "error", err)
			return nil, fmt.Errorf("failed to scan period sum: %w", err)
		}
		sums = append(sums, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over period sums", "error", err)
		return nil, fmt.Errorf("error iterating over period sums: %w", err)
	}

	return sums, nil
}
