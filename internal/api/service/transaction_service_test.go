package service

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/event"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	accounts     *fakeAccountRepo
	transactions *fakeTransactionRepo
	outbox       *fakeOutboxRepo
	transaction  TransactionService
	transfer     TransferService
}

func newLedgerFixture() *ledgerFixture {
	logger := newTestLogger()
	accounts := newFakeAccountRepo()
	transactions := newFakeTransactionRepo()
	outboxRepo := newFakeOutboxRepo()
	ledger := NewBalanceLedger(logger, accounts)
	txManager := fakeTxManager{}

	return &ledgerFixture{
		accounts:     accounts,
		transactions: transactions,
		outbox:       outboxRepo,
		transaction:  NewTransactionService(logger, txManager, transactions, outboxRepo, ledger),
		transfer:     NewTransferService(logger, txManager, accounts, transactions, outboxRepo, ledger),
	}
}

func (f *ledgerFixture) seedAccount(t *testing.T, name string, balance int64) *account.Account {
	t.Helper()
	acc, err := account.New(name, account.TypeBank, balance, "USD", nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.accounts.Create(context.Background(), acc))
	return acc
}

func TestTransactionServiceImpl_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("IncomeIncreasesBalance", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 10000)

		tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    5000,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
			Note:      "salary",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tr.ID)
		assert.Equal(t, int64(15000), f.accounts.balance(acc.ID))
		assert.Equal(t, 1, f.outbox.count())
	})

	t.Run("ExpenseDecreasesBalance", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 10000)

		_, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    2500,
			Type:      transaction.TypeExpense,
			Date:      time.Now(),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7500), f.accounts.balance(acc.ID))
	})

	t.Run("TransferTypeRejected", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 10000)

		_, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    100,
			Type:      transaction.TypeTransfer,
			Date:      time.Now(),
		})

		assert.ErrorIs(t, err, transaction.ErrInvalidTransactionType)
		assert.Equal(t, 0, f.transactions.count())
		assert.Equal(t, int64(10000), f.accounts.balance(acc.ID))
	})

	t.Run("NegativeAmountRejected", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 10000)

		_, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    -100,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})

		assert.ErrorIs(t, err, transaction.ErrNegativeAmount)
		assert.Equal(t, 0, f.transactions.count())
	})

	t.Run("MissingAccountStillRecordsTransaction", func(t *testing.T) {
		f := newLedgerFixture()

		tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: uuid.New(),
			Amount:    100,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})

		require.NoError(t, err)
		assert.NotNil(t, tr)
		assert.Equal(t, 1, f.transactions.count())
	})
}

func TestTransactionServiceImpl_UpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("AmountChangeReappliesEffect", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 0)

		tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    10000,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})
		require.NoError(t, err)
		require.Equal(t, int64(10000), f.accounts.balance(acc.ID))

		_, err = f.transaction.UpdateTransaction(ctx, tr.ID, TransactionInput{
			AccountID: acc.ID,
			Amount:    15000,
			Type:      transaction.TypeIncome,
			Date:      tr.Date,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(15000), f.accounts.balance(acc.ID))

		_, err = f.transaction.UpdateTransaction(ctx, tr.ID, TransactionInput{
			AccountID: acc.ID,
			Amount:    7000,
			Type:      transaction.TypeIncome,
			Date:      tr.Date,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7000), f.accounts.balance(acc.ID))
	})

	t.Run("TypeFlipReversesSign", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 0)

		tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    3000,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})
		require.NoError(t, err)

		_, err = f.transaction.UpdateTransaction(ctx, tr.ID, TransactionInput{
			AccountID: acc.ID,
			Amount:    3000,
			Type:      transaction.TypeExpense,
			Date:      tr.Date,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-3000), f.accounts.balance(acc.ID))
	})

	t.Run("AccountMoveRebalancesBoth", func(t *testing.T) {
		f := newLedgerFixture()
		accA := f.seedAccount(t, "A", 0)
		accB := f.seedAccount(t, "B", 0)

		tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: accA.ID,
			Amount:    4000,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})
		require.NoError(t, err)

		_, err = f.transaction.UpdateTransaction(ctx, tr.ID, TransactionInput{
			AccountID: accB.ID,
			Amount:    4000,
			Type:      transaction.TypeIncome,
			Date:      tr.Date,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), f.accounts.balance(accA.ID))
		assert.Equal(t, int64(4000), f.accounts.balance(accB.ID))
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newLedgerFixture()
		missing := uuid.New()

		_, err := f.transaction.UpdateTransaction(ctx, missing, TransactionInput{
			AccountID: uuid.New(),
			Amount:    100,
			Type:      transaction.TypeIncome,
			Date:      time.Now(),
		})

		assert.ErrorIs(t, err, transaction.ErrTransactionNotFound{TransactionID: missing})
	})

	t.Run("TransferRowImmutable", func(t *testing.T) {
		f := newLedgerFixture()
		src := f.seedAccount(t, "Source", 10000)
		dst := f.seedAccount(t, "Target", 0)

		leg, err := f.transfer.Transfer(ctx, TransferInput{
			SourceAccountID: src.ID,
			TargetAccountID: dst.ID,
			Amount:          1000,
			Date:            time.Now(),
		})
		require.NoError(t, err)

		_, err = f.transaction.UpdateTransaction(ctx, leg.ID, TransactionInput{
			AccountID: src.ID,
			Amount:    2000,
			Type:      transaction.TypeExpense,
			Date:      time.Now(),
		})
		assert.ErrorIs(t, err, transaction.ErrTransferImmutable{TransactionID: leg.ID})
		assert.Equal(t, int64(9000), f.accounts.balance(src.ID))
	})
}

func TestTransactionServiceImpl_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("ReversesEffect", func(t *testing.T) {
		f := newLedgerFixture()
		acc := f.seedAccount(t, "Checking", 5000)

		tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
			AccountID: acc.ID,
			Amount:    2000,
			Type:      transaction.TypeExpense,
			Date:      time.Now(),
		})
		require.NoError(t, err)
		require.Equal(t, int64(3000), f.accounts.balance(acc.ID))

		err = f.transaction.DeleteTransaction(ctx, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), f.accounts.balance(acc.ID))
		assert.Equal(t, 0, f.transactions.count())
	})

	t.Run("TransferRowImmutable", func(t *testing.T) {
		f := newLedgerFixture()
		src := f.seedAccount(t, "Source", 10000)
		dst := f.seedAccount(t, "Target", 0)

		leg, err := f.transfer.Transfer(ctx, TransferInput{
			SourceAccountID: src.ID,
			TargetAccountID: dst.ID,
			Amount:          1000,
			Date:            time.Now(),
		})
		require.NoError(t, err)

		err = f.transaction.DeleteTransaction(ctx, leg.ID)
		assert.ErrorIs(t, err, transaction.ErrTransferImmutable{TransactionID: leg.ID})
		assert.Equal(t, 1, f.transactions.count())
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newLedgerFixture()
		missing := uuid.New()

		err := f.transaction.DeleteTransaction(ctx, missing)
		assert.ErrorIs(t, err, transaction.ErrTransactionNotFound{TransactionID: missing})
	})
}

func TestTransactionServiceImpl_EventStaging(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	acc := f.seedAccount(t, "Checking", 0)

	tr, err := f.transaction.CreateTransaction(ctx, TransactionInput{
		AccountID: acc.ID,
		Amount:    1000,
		Type:      transaction.TypeIncome,
		Date:      time.Now(),
	})
	require.NoError(t, err)

	_, err = f.transaction.UpdateTransaction(ctx, tr.ID, TransactionInput{
		AccountID: acc.ID,
		Amount:    2000,
		Type:      transaction.TypeIncome,
		Date:      tr.Date,
	})
	require.NoError(t, err)

	require.NoError(t, f.transaction.DeleteTransaction(ctx, tr.ID))

	messages, err := f.outbox.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	var types []event.Type
	for _, m := range messages {
		ev, err := m.GetLedgerEvent()
		require.NoError(t, err)
		assert.Equal(t, tr.ID, ev.TransactionID)
		types = append(types, ev.Type)
	}
	assert.Equal(t, []event.Type{
		event.TypeTransactionCreated,
		event.TypeTransactionUpdated,
		event.TypeTransactionDeleted,
	}, types)
}
