// Package category contains category-related use cases.
package category

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
	Type   *entity.CategoryType // Optional filter by category type
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	Type      entity.CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, 0, len(categories)),
	}
	for _, cat := range categories {
		if input.Type != nil && cat.Type != *input.Type {
			continue
		}
		output.Categories = append(output.Categories, &CategoryOutput{
			ID:        cat.ID,
			Name:      cat.Name,
			Color:     cat.Color,
			Icon:      cat.Icon,
			Type:      cat.Type,
			CreatedAt: cat.CreatedAt,
			UpdatedAt: cat.UpdatedAt,
		})
	}

	return output, nil
}
