// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a financial transaction in the Finsight system.
// Amount is always positive; Type carries the income/expense semantics.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  *uuid.UUID // Optional, can be uncategorized
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
