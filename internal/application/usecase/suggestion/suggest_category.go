// Package suggestion contains the AI category suggestion use case.
package suggestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
	Type        entity.TransactionType
}

// SuggestCategoryOutput represents the output of a category suggestion.
// Suggestion is nil when the AI service is not configured; callers fall
// back to manual categorization.
type SuggestCategoryOutput struct {
	Suggestion *adapter.CategorySuggestion
}

// SuggestCategoryUseCase asks the AI service to pick a category for a
// transaction description, grounded on the user's existing categories.
type SuggestCategoryUseCase struct {
	categoryRepo      adapter.CategoryRepository
	suggestionService adapter.CategorySuggestionService
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
// suggestionService may be nil when no AI provider is configured.
func NewSuggestCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	suggestionService adapter.CategorySuggestionService,
) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		categoryRepo:      categoryRepo,
		suggestionService: suggestionService,
	}
}

// Execute performs the category suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if input.Description == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if uc.suggestionService == nil || !uc.suggestionService.IsAvailable() {
		return &SuggestCategoryOutput{}, nil
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	suggestion, err := uc.suggestionService.Suggest(ctx, &adapter.SuggestionRequest{
		Description: input.Description,
		Type:        input.Type,
		Categories:  categories,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get category suggestion: %w", err)
	}

	// Only pass through references to categories the user actually owns
	if suggestion != nil && suggestion.ExistingCategoryID != nil {
		owned := false
		for _, c := range categories {
			if c.ID == *suggestion.ExistingCategoryID {
				owned = true
				break
			}
		}
		if !owned {
			suggestion.ExistingCategoryID = nil
		}
	}

	return &SuggestCategoryOutput{Suggestion: suggestion}, nil
}
