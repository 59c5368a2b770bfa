// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Category    *CategoryOutput
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// newTransactionOutput maps a transaction entity and its optional category to
// the output shape.
func newTransactionOutput(transaction *entity.Transaction, category *entity.Category) *TransactionOutput {
	output := &TransactionOutput{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Date:        transaction.Date,
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Type:        transaction.Type,
		CategoryID:  transaction.CategoryID,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
	if category != nil {
		output.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		}
	}
	return output
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}

// invalidateSummaries drops the user's cached dashboard summaries after a
// write. Failures are logged and swallowed; the cache TTL bounds staleness.
func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Summary cache invalidation failed", "userID", userID, "error", err)
	}
}
