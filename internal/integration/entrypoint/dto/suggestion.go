// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finsight/backend/internal/application/adapter"
)

// SuggestCategoryRequest represents the request body for category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required,min=1,max=255"`
	Type        string `json:"type" binding:"required,oneof=expense income"`
}

// NewCategorySuggestionResponse represents a proposed new category.
type NewCategorySuggestionResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// SuggestCategoryResponse represents the response for category suggestion.
// Both category fields are null when the suggestion service is unavailable.
type SuggestCategoryResponse struct {
	ExistingCategoryID *string                        `json:"existing_category_id,omitempty"`
	NewCategory        *NewCategorySuggestionResponse `json:"new_category,omitempty"`
	Confidence         float64                        `json:"confidence"`
	Reasoning          string                         `json:"reasoning,omitempty"`
}

// ToSuggestCategoryResponse converts a category suggestion to its DTO.
func ToSuggestCategoryResponse(s *adapter.CategorySuggestion) SuggestCategoryResponse {
	if s == nil {
		return SuggestCategoryResponse{}
	}
	resp := SuggestCategoryResponse{
		Confidence: s.Confidence,
		Reasoning:  s.Reasoning,
	}
	if s.ExistingCategoryID != nil {
		id := s.ExistingCategoryID.String()
		resp.ExistingCategoryID = &id
	}
	if s.NewCategory != nil {
		resp.NewCategory = &NewCategorySuggestionResponse{
			Name:  s.NewCategory.Name,
			Color: s.NewCategory.Color,
			Icon:  s.NewCategory.Icon,
			Type:  string(s.NewCategory.Type),
		}
	}
	return resp
}
