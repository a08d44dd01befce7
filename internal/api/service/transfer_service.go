package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/event"
	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/jackc/pgx/v5"
)

// TransferServiceImpl implements the TransferService interface
type TransferServiceImpl struct {
	logger          *slog.Logger
	txManager       TxManager
	accountRepo     account.Repository
	transactionRepo transaction.Repository
	outboxRepo      outbox.Repository
	ledger          *BalanceLedger
}

// NewTransferService creates a new transfer service
func NewTransferService(logger *slog.Logger, txManager TxManager, accountRepo account.Repository, transactionRepo transaction.Repository, outboxRepo outbox.Repository, ledger *BalanceLedger) TransferService {
	return &TransferServiceImpl{
		logger:          logger,
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		ledger:          ledger,
	}
}

// Transfer moves amount from the source account to the target account and
// records a single transfer-typed transaction against the source. A missing
// target only skips the credit; the debit and the record still commit.
func (s *TransferServiceImpl) Transfer(ctx context.Context, input TransferInput) (*transaction.Transaction, error) {
	if input.Amount < 0 {
		return nil, transaction.ErrNegativeAmount
	}

	var leg *transaction.Transaction
	err := s.txManager.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.ledger.ApplyEffect(ctx, tx, input.SourceAccountID, input.Amount, transaction.EffectExpense); err != nil {
			return err
		}

		targetName := "Unknown"
		target, err := s.accountRepo.WithTx(tx).GetByID(ctx, input.TargetAccountID)
		switch {
		case err == nil:
			targetName = target.Name
			if err := s.ledger.ApplyEffect(ctx, tx, input.TargetAccountID, input.Amount, transaction.EffectIncome); err != nil {
				return err
			}
		case errors.Is(err, account.ErrAccountNotFound{}):
			s.logger.Warn("Transfer target account not found, crediting skipped",
				"target_account_id", input.TargetAccountID.String(),
			)
		default:
			return err
		}

		tr, err := transaction.New(input.SourceAccountID, nil, input.Amount, transaction.TypeTransfer, input.Date, "Transfer to "+targetName)
		if err != nil {
			return err
		}
		if err := s.transactionRepo.WithTx(tx).Create(ctx, tr); err != nil {
			return err
		}

		leg = tr
		return stageLedgerEvent(ctx, tx, s.outboxRepo, event.TypeTransferCompleted, tr)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer completed",
		"transaction_id", leg.ID.String(),
		"source_account_id", input.SourceAccountID.String(),
		"target_account_id", input.TargetAccountID.String(),
		"amount", input.Amount,
	)
	return leg, nil
}
