package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// summaryCacheTTL bounds how long a cached summary may be served. Writes
// invalidate eagerly; the TTL only covers invalidation failures.
const summaryCacheTTL = 15 * time.Minute

// GetSummaryInput represents the input for getting a period summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Range  Range
}

// GetSummaryOutput represents totals for the current period with
// period-over-period percentage deltas.
type GetSummaryOutput struct {
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	Balance        decimal.Decimal
	IncomeChange   float64
	ExpensesChange float64
	BalanceChange  float64
}

// GetSummaryUseCase handles computing dashboard summary totals.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	summaryCache    adapter.SummaryCache
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
// summaryCache may be nil, in which case every request is computed.
func NewGetSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	summaryCache adapter.SummaryCache,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		summaryCache:    summaryCache,
	}
}

// Execute computes income, expense and balance totals for the range, with
// percentage deltas against the previous period.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if err := validateRange(input.Range); err != nil {
		return nil, err
	}

	rangeKey := cacheKey(input.Range)
	if uc.summaryCache != nil {
		cached, err := uc.summaryCache.Get(ctx, input.UserID, rangeKey)
		if err != nil {
			slog.Warn("Summary cache read failed", "userID", input.UserID, "error", err)
		} else if cached != nil {
			return &GetSummaryOutput{
				TotalIncome:    cached.TotalIncome,
				TotalExpenses:  cached.TotalExpenses,
				Balance:        cached.Balance,
				IncomeChange:   cached.IncomeChange,
				ExpensesChange: cached.ExpensesChange,
				BalanceChange:  cached.BalanceChange,
			}, nil
		}
	}

	snap, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	split := FilterByRange(snap.transactions, input.Range)

	income := Total(split.Current, entity.TransactionTypeIncome)
	expenses := Total(split.Current, entity.TransactionTypeExpense)
	balance := income.Sub(expenses)

	prevIncome := Total(split.Previous, entity.TransactionTypeIncome)
	prevExpenses := Total(split.Previous, entity.TransactionTypeExpense)
	prevBalance := prevIncome.Sub(prevExpenses)

	output := &GetSummaryOutput{
		TotalIncome:    income,
		TotalExpenses:  expenses,
		Balance:        balance,
		IncomeChange:   PercentChange(income, prevIncome),
		ExpensesChange: PercentChange(expenses, prevExpenses),
		BalanceChange:  PercentChange(balance, prevBalance),
	}

	if uc.summaryCache != nil {
		cached := &adapter.CachedSummary{
			TotalIncome:    output.TotalIncome,
			TotalExpenses:  output.TotalExpenses,
			Balance:        output.Balance,
			IncomeChange:   output.IncomeChange,
			ExpensesChange: output.ExpensesChange,
			BalanceChange:  output.BalanceChange,
		}
		if err := uc.summaryCache.Set(ctx, input.UserID, rangeKey, cached, summaryCacheTTL); err != nil {
			slog.Warn("Summary cache write failed", "userID", input.UserID, "error", err)
		}
	}

	return output, nil
}

// validateRange rejects windows whose To bound precedes From.
func validateRange(r Range) error {
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDateRange,
			"to date must not be before from date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// cacheKey renders a range as a stable cache key segment.
func cacheKey(r Range) string {
	const layout = "2006-01-02"
	from, to := "open", "open"
	if r.From != nil {
		from = r.From.Format(layout)
	}
	if r.To != nil {
		to = r.To.Format(layout)
	}
	return from + ":" + to
}
