// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// SuggestionRequest represents a request to suggest a category for a transaction.
type SuggestionRequest struct {
	Description string
	Type        entity.TransactionType
	Categories  []*entity.Category
}

// CategorySuggestion represents a suggested category for a transaction description.
// Either ExistingCategoryID is set, or NewCategory describes a category that
// does not exist yet.
type CategorySuggestion struct {
	ExistingCategoryID *uuid.UUID
	NewCategory        *NewCategorySuggestion
	Confidence         float64
	Reasoning          string
}

// NewCategorySuggestion describes a proposed new category.
type NewCategorySuggestion struct {
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// CategorySuggestionService defines the interface for AI-backed category suggestions.
type CategorySuggestionService interface {
	// IsAvailable reports whether the service is configured and usable.
	IsAvailable() bool

	// Suggest returns a category suggestion for a transaction description.
	Suggest(ctx context.Context, request *SuggestionRequest) (*CategorySuggestion, error)
}
