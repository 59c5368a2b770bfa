// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success             bool
	DeletedTransactions int64
}

// DeleteCategoryUseCase handles category deletion logic. Deleting a category
// cascades to its transactions so aggregations never see dangling references.
type DeleteCategoryUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	summaryCache    adapter.SummaryCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
// summaryCache may be nil.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	summaryCache adapter.SummaryCache,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		summaryCache:    summaryCache,
	}
}

// Execute performs the category deletion with its transaction cascade.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	// Find the existing category
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Check if user is authorized to delete this category
	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	// Remove the transactions first so a failure leaves the category intact
	deleted, err := uc.transactionRepo.DeleteByCategory(ctx, input.CategoryID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete category transactions: %w", err)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	if uc.summaryCache != nil {
		if err := uc.summaryCache.InvalidateUser(ctx, input.UserID); err != nil {
			slog.Warn("Summary cache invalidation failed", "userID", input.UserID, "error", err)
		}
	}

	return &DeleteCategoryOutput{
		Success:             true,
		DeletedTransactions: deleted,
	}, nil
}
