package service

import (
	"context"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	txManager       TxManager
	accountRepo     account.Repository
	transactionRepo transaction.Repository
}

// NewAccountService creates a new account service
func NewAccountService(txManager TxManager, accountRepo account.Repository, transactionRepo transaction.Repository) AccountService {
	return &AccountServiceImpl{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateAccount creates a new account with the given opening balance.
// The opening balance may be negative, e.g. a credit card carrying debt.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, name string, accountType account.Type, openingBalance int64, currency string, creditLimit *int64, dueDate *string) (*account.Account, error) {
	acc, err := account.New(name, accountType, openingBalance, currency, creditLimit, dueDate)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// GetAccountByID retrieves an account by its ID, returns ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// ListAccounts retrieves all accounts
func (s *AccountServiceImpl) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.accountRepo.List(ctx)
}

// DeleteAccount removes an account. The existence check and the delete run in
// one transaction so a concurrent transaction insert cannot orphan rows.
func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.txManager.ExecuteTx(ctx, func(tx pgx.Tx) error {
		inUse, err := s.transactionRepo.WithTx(tx).ExistsByAccountID(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return account.ErrAccountInUse{AccountID: id}
		}

		return s.accountRepo.WithTx(tx).Delete(ctx, id)
	})
}
