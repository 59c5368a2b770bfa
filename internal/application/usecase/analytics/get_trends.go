package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

const (
	// DefaultTrendMonths is the trend window used when the caller does not
	// specify one.
	DefaultTrendMonths = 6

	// maxTrendMonths bounds the trend window.
	maxTrendMonths = 24
)

// GetTrendsInput represents the input for getting the monthly expense trend.
// Reference anchors the window; it is passed explicitly rather than read from
// the clock so the computation stays deterministic.
type GetTrendsInput struct {
	UserID    uuid.UUID
	Months    int
	Reference time.Time
}

// TrendPoint represents one month's expense total.
type TrendPoint struct {
	Month time.Time
	Label string
	Total decimal.Decimal
}

// GetTrendsOutput represents the output of getting the monthly expense trend.
type GetTrendsOutput struct {
	Points []TrendPoint
}

// GetTrendsUseCase handles computing the monthly expense trend for charting.
type GetTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute sums expenses per calendar month over the trailing window ending at
// the reference month, oldest first. Months without expenses appear with a
// zero total so charts stay gap-free.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 || months > maxTrendMonths {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidTrendMonths,
			"months must be between 1 and 24",
			domainerror.ErrInvalidTrendMonths,
		)
	}

	snap, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		monthStart := time.Date(input.Reference.Year(), input.Reference.Month()-time.Month(i), 1, 0, 0, 0, 0, input.Reference.Location())

		total := decimal.Zero
		for _, t := range snap.transactions {
			if t.Type != entity.TransactionTypeExpense {
				continue
			}
			if t.Date.Year() == monthStart.Year() && t.Date.Month() == monthStart.Month() {
				total = total.Add(t.Amount)
			}
		}

		points = append(points, TrendPoint{
			Month: monthStart,
			Label: monthStart.Format("Jan"),
			Total: total,
		})
	}

	return &GetTrendsOutput{Points: points}, nil
}
