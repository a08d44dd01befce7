package service

import (
	"context"
	"time"

	"github.com/fintrack-ledger/internal/domain/account"
	"github.com/fintrack-ledger/internal/domain/transaction"
)

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	accountRepo     account.Repository
	transactionRepo transaction.Repository
	clock           Clock
}

// NewReportService creates a new report service
func NewReportService(accountRepo account.Repository, transactionRepo transaction.Repository, clock Clock) ReportService {
	return &ReportServiceImpl{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Dashboard returns the dashboard snapshot. The balance total always covers
// all accounts regardless of the date range; only the income and expense sums
// are range-bound. A nil start defaults to the first day of the current month.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, start, end *time.Time) (*DashboardStats, error) {
	totalBalance, err := s.accountRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}

	if start == nil {
		now := s.clock.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = &monthStart
	}

	income, err := s.transactionRepo.SumAmounts(ctx, transaction.TypeIncome, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.transactionRepo.SumAmounts(ctx, transaction.TypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalBalance:   totalBalance,
		MonthlyIncome:  income,
		MonthlyExpense: expense,
	}, nil
}

// MonthlyTrend merges per-period type sums into one bucket per period,
// oldest first. Periods with only one type leave the other total at zero.
func (s *ReportServiceImpl) MonthlyTrend(ctx context.Context) ([]TrendBucket, error) {
	sums, err := s.transactionRepo.GroupByPeriodAndType(ctx)
	if err != nil {
		return nil, err
	}

	var buckets []TrendBucket
	for _, row := range sums {
		if len(buckets) == 0 || buckets[len(buckets)-1].Period != row.Period {
			buckets = append(buckets, TrendBucket{Period: row.Period})
		}
		bucket := &buckets[len(buckets)-1]
		switch row.Type {
		case transaction.TypeIncome:
			bucket.Income = row.Total
		case transaction.TypeExpense:
			bucket.Expense = row.Total
		}
	}

	return buckets, nil
}
