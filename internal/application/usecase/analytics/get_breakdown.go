package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// GetBreakdownInput represents the input for getting a category breakdown.
type GetBreakdownInput struct {
	UserID uuid.UUID
	Range  Range
	Type   entity.TransactionType
}

// BreakdownItem represents a single category in the breakdown.
type BreakdownItem struct {
	CategoryID uuid.UUID
	Name       string
	Color      string
	Total      decimal.Decimal
	Percentage float64
}

// GetBreakdownOutput represents the output of getting a category breakdown.
type GetBreakdownOutput struct {
	Total      decimal.Decimal
	Categories []BreakdownItem
}

// GetBreakdownUseCase handles computing category-grouped aggregates for charting.
type GetBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetBreakdownUseCase creates a new GetBreakdownUseCase instance.
func NewGetBreakdownUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute groups the current period's transactions of the requested type by
// category, ordered by total descending. The percentage is each category's
// share of the period total for that type; uncategorized spend widens the gap
// between the sum of shares and 100%.
func (uc *GetBreakdownUseCase) Execute(ctx context.Context, input GetBreakdownInput) (*GetBreakdownOutput, error) {
	if err := validateRange(input.Range); err != nil {
		return nil, err
	}

	transactionType := input.Type
	if transactionType == "" {
		transactionType = entity.TransactionTypeExpense
	}

	snap, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	split := FilterByRange(snap.transactions, input.Range)
	matching := filterByType(split.Current, transactionType)

	total := Total(matching, transactionType)
	groups := GroupByCategory(matching, snap.categories)

	categories := make([]BreakdownItem, 0, len(groups))
	for _, group := range groups {
		var percentage float64
		if !total.IsZero() {
			pct := group.Total.Mul(decimal.NewFromInt(100)).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}
		categories = append(categories, BreakdownItem{
			CategoryID: group.CategoryID,
			Name:       group.Name,
			Color:      group.Color,
			Total:      group.Total,
			Percentage: percentage,
		})
	}

	return &GetBreakdownOutput{
		Total:      total,
		Categories: categories,
	}, nil
}
