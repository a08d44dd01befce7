package service

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/outbox"
	"github.com/fintrack-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fakeTxManager runs the callback directly; the fakes below ignore the tx
type fakeTxManager struct{}

func (fakeTxManager) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*account.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*account.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, acc *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *acc
	r.accounts[acc.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound{AccountID: id}
	}
	cp := *acc
	return &cp, nil
}

func (r *fakeAccountRepo) List(_ context.Context) ([]*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*account.Account
	for _, acc := range r.accounts {
		cp := *acc
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return account.ErrAccountNotFound{AccountID: id}
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) AdjustBalance(_ context.Context, id uuid.UUID, delta int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return false, nil
	}
	acc.Balance += delta
	return true, nil
}

func (r *fakeAccountRepo) SumBalances(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, acc := range r.accounts {
		total += acc.Balance
	}
	return total, nil
}

func (r *fakeAccountRepo) WithTx(_ pgx.Tx) account.Repository {
	return r
}

func (r *fakeAccountRepo) balance(id uuid.UUID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id].Balance
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*transaction.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uuid.UUID]*transaction.Transaction)}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tr *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tr
	r.transactions[tr.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.transactions[id]
	if !ok {
		return nil, transaction.ErrTransactionNotFound{TransactionID: id}
	}
	cp := *tr
	return &cp, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tr *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[tr.ID]; !ok {
		return transaction.ErrTransactionNotFound{TransactionID: tr.ID}
	}
	cp := *tr
	r.transactions[tr.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[id]; !ok {
		return transaction.ErrTransactionNotFound{TransactionID: id}
	}
	delete(r.transactions, id)
	return nil
}

func (r *fakeTransactionRepo) List(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*transaction.Transaction
	for _, tr := range r.transactions {
		if filter.Start != nil && tr.Date.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && tr.Date.After(*filter.End) {
			continue
		}
		cp := *tr
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeTransactionRepo) ExistsByAccountID(_ context.Context, accountID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tr := range r.transactions {
		if tr.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTransactionRepo) SumAmounts(_ context.Context, transactionType transaction.Type, start, end *time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, tr := range r.transactions {
		if tr.Type != transactionType {
			continue
		}
		if start != nil && tr.Date.Before(*start) {
			continue
		}
		if end != nil && tr.Date.After(*end) {
			continue
		}
		total += tr.Amount
	}
	return total, nil
}

func (r *fakeTransactionRepo) GroupByPeriodAndType(_ context.Context) ([]transaction.PeriodTypeSum, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[string]map[transaction.Type]int64)
	for _, tr := range r.transactions {
		if tr.Type == transaction.TypeTransfer {
			continue
		}
		period := tr.Date.Format("2006-01")
		if totals[period] == nil {
			totals[period] = make(map[transaction.Type]int64)
		}
		totals[period][tr.Type] += tr.Amount
	}

	var periods []string
	for period := range totals {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	var sums []transaction.PeriodTypeSum
	for _, period := range periods {
		for _, typ := range []transaction.Type{transaction.TypeExpense, transaction.TypeIncome} {
			if total, ok := totals[period][typ]; ok {
				sums = append(sums, transaction.PeriodTypeSum{Period: period, Type: typ, Total: total})
			}
		}
	}
	return sums, nil
}

func (r *fakeTransactionRepo) WithTx(_ pgx.Tx) transaction.Repository {
	return r
}

func (r *fakeTransactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

type fakeOutboxRepo struct {
	mu       sync.Mutex
	messages []*outbox.Message
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{}
}

func (r *fakeOutboxRepo) Create(_ context.Context, message *outbox.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = int64(len(r.messages) + 1)
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeOutboxRepo) GetPending(_ context.Context, limit int) ([]*outbox.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*outbox.Message
	for _, m := range r.messages {
		if m.Status == outbox.StatusPending {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, id int64, status outbox.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			m.Status = status
			return nil
		}
	}
	return outbox.ErrMessageNotFound{ID: id}
}

func (r *fakeOutboxRepo) IncrementAttempts(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			m.Attempts++
			return nil
		}
	}
	return outbox.ErrMessageNotFound{ID: id}
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return outbox.ErrMessageNotFound{ID: id}
}

func (r *fakeOutboxRepo) WithTx(_ pgx.Tx) outbox.Repository {
	return r
}

func (r *fakeOutboxRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

var (
	_ account.Repository     = (*fakeAccountRepo)(nil)
	_ transaction.Repository = (*fakeTransactionRepo)(nil)
	_ outbox.Repository      = (*fakeOutboxRepo)(nil)
	_ TxManager              = fakeTxManager{}
)
