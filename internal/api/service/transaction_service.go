package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintrack-ledger/internal/domain/event"
	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	logger          *slog.Logger
	txManager       TxManager
	transactionRepo transaction.Repository
	outboxRepo      outbox.Repository
	ledger          *BalanceLedger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, txManager TxManager, transactionRepo transaction.Repository, outboxRepo outbox.Repository, ledger *BalanceLedger) TransactionService {
	return &TransactionServiceImpl{
		logger:          logger,
		txManager:       txManager,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		ledger:          ledger,
	}
}

// CreateTransaction records a transaction, applies its balance effect, and
// stages the created event, all in one database transaction
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, input TransactionInput) (*transaction.Transaction, error) {
	kind, err := input.Type.EffectKind()
	if err != nil {
		return nil, err
	}

	tr, err := transaction.New(input.AccountID, input.CategoryID, input.Amount, input.Type, input.Date, input.Note)
	if err != nil {
		return nil, err
	}

	err = s.txManager.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.transactionRepo.WithTx(tx).Create(ctx, tr); err != nil {
			return err
		}
		if err := s.ledger.ApplyEffect(ctx, tx, tr.AccountID, tr.Amount, kind); err != nil {
			return err
		}
		return stageLedgerEvent(ctx, tx, s.outboxRepo, event.TypeTransactionCreated, tr)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		"transaction_id", tr.ID.String(),
		"account_id", tr.AccountID.String(),
		"type", string(tr.Type),
		"amount", tr.Amount,
	)
	return tr, nil
}

// GetTransactionByID retrieves a transaction by its ID
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// UpdateTransaction reverses the stored balance effect, overwrites the row
// with the input, and applies the new effect. Updating a transfer row is
// rejected because a transfer leg has no single reversible effect.
func (s *TransactionServiceImpl) UpdateTransaction(ctx context.Context, id uuid.UUID, input TransactionInput) (*transaction.Transaction, error) {
	newKind, err := input.Type.EffectKind()
	if err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, transaction.ErrNegativeAmount
	}

	var updated *transaction.Transaction
	err = s.txManager.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.transactionRepo.WithTx(tx)

		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.Type == transaction.TypeTransfer {
			return transaction.ErrTransferImmutable{TransactionID: id}
		}

		oldKind, err := existing.Type.EffectKind()
		if err != nil {
			return err
		}
		if err := s.ledger.ApplyEffect(ctx, tx, existing.AccountID, existing.Amount, oldKind.Opposite()); err != nil {
			return err
		}

		existing.AccountID = input.AccountID
		existing.CategoryID = input.CategoryID
		existing.Amount = input.Amount
		existing.Type = input.Type
		existing.Date = input.Date
		existing.Note = input.Note
		existing.UpdatedAt = time.Now()

		if err := repo.Update(ctx, existing); err != nil {
			return err
		}
		if err := s.ledger.ApplyEffect(ctx, tx, existing.AccountID, existing.Amount, newKind); err != nil {
			return err
		}

		updated = existing
		return stageLedgerEvent(ctx, tx, s.outboxRepo, event.TypeTransactionUpdated, existing)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTransaction reverses the stored balance effect and removes the row.
// Deleting a transfer row is rejected for the same reason as updating one.
func (s *TransactionServiceImpl) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.txManager.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.transactionRepo.WithTx(tx)

		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.Type == transaction.TypeTransfer {
			return transaction.ErrTransferImmutable{TransactionID: id}
		}

		kind, err := existing.Type.EffectKind()
		if err != nil {
			return err
		}
		if err := s.ledger.ApplyEffect(ctx, tx, existing.AccountID, existing.Amount, kind.Opposite()); err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			return err
		}

		return stageLedgerEvent(ctx, tx, s.outboxRepo, event.TypeTransactionDeleted, existing)
	})
}

// ListTransactions retrieves transactions matching the filter, newest first
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	return s.transactionRepo.List(ctx, filter)
}
