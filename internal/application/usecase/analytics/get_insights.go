package analytics

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
)

// GetInsightsInput represents the input for generating spending insights.
type GetInsightsInput struct {
	UserID uuid.UUID
	Range  Range
}

// GetInsightsOutput represents the output of generating spending insights.
// Insights is empty (not an error) when the period has no categorized
// expenses to rank.
type GetInsightsOutput struct {
	Insights []Insight
}

// GetInsightsUseCase handles generating rule-based spending insights.
type GetInsightsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance.
func NewGetInsightsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute splits the user's transactions into current and previous periods
// and runs the insight generator over them.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, input GetInsightsInput) (*GetInsightsOutput, error) {
	if err := validateRange(input.Range); err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	split := FilterByRange(snap.transactions, input.Range)
	insights := GenerateInsights(split.Current, split.Previous, snap.categories)

	return &GetInsightsOutput{Insights: insights}, nil
}
