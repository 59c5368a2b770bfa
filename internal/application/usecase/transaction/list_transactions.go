// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
	Search     string
	Page       int
	Limit      int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := adapter.TransactionFilter{
		UserID:     input.UserID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CategoryID: input.CategoryID,
		Type:       input.Type,
		Search:     input.Search,
	}

	pagination := adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for i, txnWithCat := range result.Transactions {
		output.Transactions[i] = newTransactionOutput(txnWithCat.Transaction, txnWithCat.Category)
	}

	return output, nil
}
