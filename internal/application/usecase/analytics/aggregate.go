package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

// CategoryAggregate is the summed amount for one category, carrying the
// display attributes the chart layer needs.
type CategoryAggregate struct {
	CategoryID uuid.UUID
	Name       string
	Color      string
	Total      decimal.Decimal
}

// Total sums the amounts of transactions matching the given type. Every
// transaction contributes to exactly one type's total. An empty or
// non-matching input yields zero.
func Total(transactions []*entity.Transaction, transactionType entity.TransactionType) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transactions {
		if t.Type == transactionType {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// GroupByCategory sums transaction amounts per category, ordered by total
// descending. Transactions whose category cannot be resolved are dropped from
// the grouping (they still count in Total). Grouping keys on category ID, so
// two categories sharing a name stay distinct. Ties keep first-seen order.
func GroupByCategory(transactions []*entity.Transaction, categories []*entity.Category) []CategoryAggregate {
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	totals := make(map[uuid.UUID]int) // category ID -> index into result
	var result []CategoryAggregate

	for _, t := range transactions {
		if t.CategoryID == nil {
			continue
		}
		category, ok := byID[*t.CategoryID]
		if !ok {
			continue
		}

		if i, seen := totals[category.ID]; seen {
			result[i].Total = result[i].Total.Add(t.Amount)
			continue
		}
		totals[category.ID] = len(result)
		result = append(result, CategoryAggregate{
			CategoryID: category.ID,
			Name:       category.Name,
			Color:      category.Color,
			Total:      t.Amount,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result
}
