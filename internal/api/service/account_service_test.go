package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountServiceImpl_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)

		acc, err := service.CreateAccount(ctx, "Checking", account.TypeBank, 10000, "USD", nil, nil)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, acc.ID)
		assert.Equal(t, "Checking", acc.Name)
		assert.Equal(t, account.TypeBank, acc.Type)
		assert.Equal(t, int64(10000), acc.Balance)
		assert.Equal(t, "USD", acc.Currency)

		stored, err := f.accounts.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Balance, stored.Balance)
	})

	t.Run("CreditAccountWithNegativeBalance", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)

		limit := int64(500000)
		due := "25"
		acc, err := service.CreateAccount(ctx, "Visa", account.TypeCredit, -120000, "USD", &limit, &due)

		require.NoError(t, err)
		assert.Equal(t, int64(-120000), acc.Balance)
		require.NotNil(t, acc.CreditLimit)
		assert.Equal(t, limit, *acc.CreditLimit)
	})

	t.Run("InvalidAccountData", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)

		_, err := service.CreateAccount(ctx, "", account.TypeBank, 10000, "USD", nil, nil)
		assert.ErrorIs(t, err, account.ErrEmptyName)

		_, err = service.CreateAccount(ctx, "Checking", account.TypeBank, 10000, "US", nil, nil)
		assert.ErrorIs(t, err, account.ErrInvalidCurrencyFormat)
	})
}

func TestAccountServiceImpl_GetAccountByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)
		acc := f.seedAccount(t, "Found", 20000)

		got, err := service.GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, got.ID)
		assert.Equal(t, int64(20000), got.Balance)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)
		missing := uuid.New()

		got, err := service.GetAccountByID(ctx, missing)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, account.ErrAccountNotFound{AccountID: missing}))
	})
}

func TestAccountServiceImpl_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)
		acc := f.seedAccount(t, "Doomed", 0)

		err := service.DeleteAccount(ctx, acc.ID)
		require.NoError(t, err)

		_, err = f.accounts.GetByID(ctx, acc.ID)
		assert.Error(t, err)
	})

	t.Run("InUse", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)
		acc := f.seedAccount(t, "Busy", 0)

		_, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    100,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})
		require.NoError(t, err)

		err = service.DeleteAccount(ctx, acc.ID)
		var inUseErr account.ErrAccountInUse
		assert.ErrorAs(t, err, &inUseErr)
		assert.Equal(t, acc.ID, inUseErr.AccountID)

		// Account survives
		_, err = f.accounts.GetByID(ctx, acc.ID)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newLedgerFixture()
		service := NewAccountService(fakeTxManager{}, f.accounts, f.transactions)
		missing := uuid.New()

		err := service.DeleteAccount(ctx, missing)
		assert.True(t, errors.Is(err, account.ErrAccountNotFound{AccountID: missing}))
	})
}
