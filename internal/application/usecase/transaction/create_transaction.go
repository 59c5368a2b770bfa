// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	summaryCache    adapter.SummaryCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
// summaryCache may be nil.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	summaryCache adapter.SummaryCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		summaryCache:    summaryCache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate required fields
	if input.Description == "" || input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"date and description are required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	// Validate description length
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	// Validate transaction type
	if !isValidTransactionType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Amounts are stored positive; the type carries the sign semantics
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	// Validate category if provided
	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}

		// Verify category ownership
		if cat.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}

		category = cat
	}

	// Create transaction entity
	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
	)

	// Save transaction to database
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateSummaries(ctx, uc.summaryCache, input.UserID)

	return &CreateTransactionOutput{
		Transaction: newTransactionOutput(transaction, category),
	}, nil
}
