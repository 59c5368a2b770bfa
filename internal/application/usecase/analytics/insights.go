package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

// maxInsights caps the number of insights produced per request.
const maxInsights = 3

// increaseThreshold is the percent-change boundary selecting the "spending
// increased" suggestion. Strictly greater than: a change of exactly 10% picks
// the baseline suggestion.
const increaseThreshold = 10.0

// Insight is a ranked expense category with its current-period spend, the
// period-over-period percentage change, and a rule-selected suggestion.
type Insight struct {
	CategoryID uuid.UUID
	Category   string
	Amount     decimal.Decimal
	Change     float64
	Suggestion string
}

// categorySuggestions is the closed rule table for recognized category names.
// Index 0 is the suggestion for a >10% increase, index 1 the baseline.
var categorySuggestions = map[string][2]string{
	"Food": {
		"Consider meal prepping on weekends to reduce dining out expenses.",
		"Try cooking at home 3 nights a week to save on dining expenses.",
	},
	"Shopping": {
		"Your shopping expenses have increased. Consider creating a shopping list and sticking to it.",
		"Wait 24 hours before making non-essential purchases to avoid impulse buying.",
	},
	"Transport": {
		"Your transport costs are rising. Consider carpooling or public transit when possible.",
		"Plan your trips efficiently to save on fuel costs.",
	},
	"Entertainment": {
		"Look for free or low-cost entertainment options in your area to reduce spending.",
		"Consider sharing subscription services with family or friends to split costs.",
	},
}

// GenerateInsights ranks the top current-period expense categories, joins each
// to its previous-period spend by category ID, and attaches a rule-selected
// suggestion. Returns at most three insights in descending order of current
// spend; with no expense categories the result is empty, which callers treat
// as "insufficient data" rather than an error.
func GenerateInsights(current, previous []*entity.Transaction, categories []*entity.Category) []Insight {
	currentByCategory := GroupByCategory(filterByType(current, entity.TransactionTypeExpense), categories)
	previousByCategory := GroupByCategory(filterByType(previous, entity.TransactionTypeExpense), categories)

	previousTotals := make(map[uuid.UUID]decimal.Decimal, len(previousByCategory))
	for _, group := range previousByCategory {
		previousTotals[group.CategoryID] = group.Total
	}

	top := currentByCategory
	if len(top) > maxInsights {
		top = top[:maxInsights]
	}

	insights := make([]Insight, 0, len(top))
	for _, group := range top {
		change := PercentChange(group.Total, previousTotals[group.CategoryID])
		insights = append(insights, Insight{
			CategoryID: group.CategoryID,
			Category:   group.Name,
			Amount:     group.Total,
			Change:     change,
			Suggestion: suggestionFor(group.Name, change),
		})
	}
	return insights
}

// suggestionFor selects the suggestion string for a category name and its
// percent change. Recognized names match case-sensitively against the rule
// table; anything else falls through to the generic templates.
func suggestionFor(name string, change float64) string {
	if pair, ok := categorySuggestions[name]; ok {
		if change > increaseThreshold {
			return pair[0]
		}
		return pair[1]
	}

	if change > increaseThreshold {
		return fmt.Sprintf(
			"Your %s spending has increased by %d%% from last month. Consider setting a budget for this category.",
			strings.ToLower(name), int(math.Round(change)),
		)
	}
	return fmt.Sprintf("Try to reduce %s expenses by finding cost-effective alternatives.", strings.ToLower(name))
}

// filterByType returns the transactions matching the given type.
func filterByType(transactions []*entity.Transaction, transactionType entity.TransactionType) []*entity.Transaction {
	var filtered []*entity.Transaction
	for _, t := range transactions {
		if t.Type == transactionType {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
