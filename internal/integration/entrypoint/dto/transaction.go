// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finsight/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount is a decimal string so values never pass through binary floats.
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      string  `json:"amount" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string `json:"date,omitempty"`
	Description   *string `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount        *string `json:"amount,omitempty"`
	Type          *string `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID    *string `json:"category_id,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	UserID      string                       `json:"user_id"`
	Date        string                       `json:"date"`
	Description string                       `json:"description"`
	Amount      string                       `json:"amount"`
	Type        string                       `json:"type"`
	CategoryID  *string                      `json:"category_id,omitempty"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// DeleteTransactionResponse represents the response for transaction deletion.
type DeleteTransactionResponse struct {
	Success bool `json:"success"`
}

// ToTransactionResponse converts a use case TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(t *transaction.TransactionOutput) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Amount:      t.Amount.String(),
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		resp.CategoryID = &id
	}
	if t.Category != nil {
		resp.Category = &TransactionCategoryResponse{
			ID:    t.Category.ID.String(),
			Name:  t.Category.Name,
			Color: t.Category.Color,
			Icon:  t.Category.Icon,
			Type:  string(t.Category.Type),
		}
	}
	return resp
}
