// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Search     string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves all transactions for a given user, newest first.
	// Analytics use cases read this as an immutable snapshot.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCategory removes all transactions referencing the given category.
	// Returns the count of deleted transactions. Used by the category delete
	// cascade so the analytics core never sees orphaned references.
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID, userID uuid.UUID) (int64, error)
}
