// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CachedSummary holds a period summary with its period-over-period deltas,
// as stored in the summary cache.
type CachedSummary struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Balance        decimal.Decimal `json:"balance"`
	IncomeChange   float64         `json:"income_change"`
	ExpensesChange float64         `json:"expenses_change"`
	BalanceChange  float64         `json:"balance_change"`
}

// SummaryCache defines the interface for caching dashboard summaries.
// The cache is a read-through optimization; a nil result with a nil error
// means a miss and callers fall back to computing the summary.
type SummaryCache interface {
	// Get retrieves a cached summary for a user and range key.
	Get(ctx context.Context, userID uuid.UUID, rangeKey string) (*CachedSummary, error)

	// Set stores a summary for a user and range key with a TTL.
	Set(ctx context.Context, userID uuid.UUID, rangeKey string, summary *CachedSummary, ttl time.Duration) error

	// InvalidateUser removes all cached summaries for a user.
	// Called after any transaction or category write.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
