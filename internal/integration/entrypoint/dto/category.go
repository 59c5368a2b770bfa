// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finsight/backend/internal/application/usecase/category"
	"github.com/finsight/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty" binding:"omitempty,max=50"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty" binding:"omitempty,max=50"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// DeleteCategoryResponse represents the response for category deletion.
type DeleteCategoryResponse struct {
	Success             bool  `json:"success"`
	DeletedTransactions int64 `json:"deleted_transactions"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponseFromOutput converts a use case CategoryOutput to a CategoryResponse DTO.
func ToCategoryResponseFromOutput(c *category.CategoryOutput) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
