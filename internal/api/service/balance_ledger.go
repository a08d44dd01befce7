package service

import (
	"context"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/event"
	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BalanceLedger is the single mutation path for account balances. Every
// transaction lifecycle operation and transfer leg funnels through ApplyEffect
// so balances always equal the sum of applied effects.
type BalanceLedger struct {
	logger   *slog.Logger
	accounts account.Repository
}

// NewBalanceLedger creates a balance ledger over the account repository
func NewBalanceLedger(logger *slog.Logger, accounts account.Repository) *BalanceLedger {
	return &BalanceLedger{
		logger:   logger,
		accounts: accounts,
	}
}

// ApplyEffect adjusts the account balance by the signed effect of amount and
// kind inside the given transaction. A missing account is skipped with a
// warning rather than failing the enclosing operation.
func (l *BalanceLedger) ApplyEffect(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, amount int64, kind transaction.EffectKind) error {
	delta := amount
	if kind == transaction.EffectExpense {
		delta = -amount
	}

	found, err := l.accounts.WithTx(tx).AdjustBalance(ctx, accountID, delta)
	if err != nil {
		return err
	}
	if !found {
		l.logger.Warn("Skipping balance adjustment for missing account",
			"account_id", accountID.String(),
			"delta", delta,
		)
	}

	return nil
}

// stageLedgerEvent writes an outbox message describing the mutation in the
// same transaction, so the event stream never diverges from committed state
func stageLedgerEvent(ctx context.Context, tx pgx.Tx, outboxRepo outbox.Repository, eventType event.Type, tr *transaction.Transaction) error {
	message, err := outbox.NewMessage(event.NewLedgerEvent(eventType, tr))
	if err != nil {
		return err
	}
	return outboxRepo.WithTx(tx).Create(ctx, message)
}
