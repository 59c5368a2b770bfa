package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

func TestGenerateInsights_EmptyWithoutExpenses(t *testing.T) {
	salary := cat("Salary", entity.CategoryTypeIncome, "#10b981")

	insights := GenerateInsights(
		[]*entity.Transaction{tx("3000", entity.TransactionTypeIncome, &salary.ID, day(2024, time.March, 1))},
		nil,
		[]*entity.Category{salary},
	)

	if len(insights) != 0 {
		t.Errorf("expected no insights without expense data, got %d", len(insights))
	}
}

func TestGenerateInsights_ExactThresholdPicksBaseline(t *testing.T) {
	food := cat("Food", entity.CategoryTypeExpense, "#ef4444")
	categories := []*entity.Category{food}

	// 1100 vs 1000 is exactly +10%, which is not strictly above the threshold.
	insights := GenerateInsights(
		[]*entity.Transaction{tx("1100", entity.TransactionTypeExpense, &food.ID, day(2024, time.March, 5))},
		[]*entity.Transaction{tx("1000", entity.TransactionTypeExpense, &food.ID, day(2024, time.February, 5))},
		categories,
	)

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Change != 10 {
		t.Errorf("Change = %v, want 10", insights[0].Change)
	}
	want := "Try cooking at home 3 nights a week to save on dining expenses."
	if insights[0].Suggestion != want {
		t.Errorf("Suggestion = %q, want %q", insights[0].Suggestion, want)
	}
}

func TestGenerateInsights_AboveThresholdPicksIncreaseSuggestion(t *testing.T) {
	food := cat("Food", entity.CategoryTypeExpense, "#ef4444")
	categories := []*entity.Category{food}

	insights := GenerateInsights(
		[]*entity.Transaction{tx("100", entity.TransactionTypeExpense, &food.ID, day(2024, time.March, 5))},
		[]*entity.Transaction{tx("50", entity.TransactionTypeExpense, &food.ID, day(2024, time.February, 5))},
		categories,
	)

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Change != 100 {
		t.Errorf("Change = %v, want 100", insights[0].Change)
	}
	want := "Consider meal prepping on weekends to reduce dining out expenses."
	if insights[0].Suggestion != want {
		t.Errorf("Suggestion = %q, want %q", insights[0].Suggestion, want)
	}
}

func TestGenerateInsights_NoPreviousDataIsZeroChange(t *testing.T) {
	shopping := cat("Shopping", entity.CategoryTypeExpense, "#ec4899")

	insights := GenerateInsights(
		[]*entity.Transaction{tx("400", entity.TransactionTypeExpense, &shopping.ID, day(2024, time.March, 5))},
		nil,
		[]*entity.Category{shopping},
	)

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Change != 0 {
		t.Errorf("Change = %v, want 0 with no previous spend", insights[0].Change)
	}
	want := "Wait 24 hours before making non-essential purchases to avoid impulse buying."
	if insights[0].Suggestion != want {
		t.Errorf("Suggestion = %q, want %q", insights[0].Suggestion, want)
	}
}

func TestGenerateInsights_TopThreeDescending(t *testing.T) {
	food := cat("Food", entity.CategoryTypeExpense, "#ef4444")
	transport := cat("Transport", entity.CategoryTypeExpense, "#f59e0b")
	bills := cat("Bills", entity.CategoryTypeExpense, "#8b5cf6")
	health := cat("Health", entity.CategoryTypeExpense, "#06b6d4")
	categories := []*entity.Category{food, transport, bills, health}

	current := []*entity.Transaction{
		tx("50", entity.TransactionTypeExpense, &health.ID, day(2024, time.March, 1)),
		tx("300", entity.TransactionTypeExpense, &food.ID, day(2024, time.March, 2)),
		tx("200", entity.TransactionTypeExpense, &bills.ID, day(2024, time.March, 3)),
		tx("100", entity.TransactionTypeExpense, &transport.ID, day(2024, time.March, 4)),
	}

	insights := GenerateInsights(current, nil, categories)

	if len(insights) != maxInsights {
		t.Fatalf("expected %d insights, got %d", maxInsights, len(insights))
	}
	wantOrder := []string{"Food", "Bills", "Transport"}
	for i, name := range wantOrder {
		if insights[i].Category != name {
			t.Errorf("insights[%d].Category = %s, want %s", i, insights[i].Category, name)
		}
	}
	for i := 1; i < len(insights); i++ {
		if insights[i].Amount.GreaterThan(insights[i-1].Amount) {
			t.Error("insights must be ordered by descending amount")
		}
	}
}

func TestGenerateInsights_GenericSuggestions(t *testing.T) {
	pets := cat("Pets", entity.CategoryTypeExpense, "#6366f1")
	categories := []*entity.Category{pets}

	t.Run("increase", func(t *testing.T) {
		insights := GenerateInsights(
			[]*entity.Transaction{tx("150", entity.TransactionTypeExpense, &pets.ID, day(2024, time.March, 1))},
			[]*entity.Transaction{tx("100", entity.TransactionTypeExpense, &pets.ID, day(2024, time.February, 1))},
			categories,
		)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		want := "Your pets spending has increased by 50% from last month. Consider setting a budget for this category."
		if insights[0].Suggestion != want {
			t.Errorf("Suggestion = %q, want %q", insights[0].Suggestion, want)
		}
	})

	t.Run("baseline", func(t *testing.T) {
		insights := GenerateInsights(
			[]*entity.Transaction{tx("100", entity.TransactionTypeExpense, &pets.ID, day(2024, time.March, 1))},
			[]*entity.Transaction{tx("100", entity.TransactionTypeExpense, &pets.ID, day(2024, time.February, 1))},
			categories,
		)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		want := "Try to reduce pets expenses by finding cost-effective alternatives."
		if insights[0].Suggestion != want {
			t.Errorf("Suggestion = %q, want %q", insights[0].Suggestion, want)
		}
	})

	t.Run("rounded percentage in message", func(t *testing.T) {
		// 117 vs 90 is a 30.0% increase once rounded.
		insights := GenerateInsights(
			[]*entity.Transaction{tx("117", entity.TransactionTypeExpense, &pets.ID, day(2024, time.March, 1))},
			[]*entity.Transaction{tx("90", entity.TransactionTypeExpense, &pets.ID, day(2024, time.February, 1))},
			categories,
		)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		want := "Your pets spending has increased by 30% from last month. Consider setting a budget for this category."
		if insights[0].Suggestion != want {
			t.Errorf("Suggestion = %q, want %q", insights[0].Suggestion, want)
		}
	})
}

func TestGenerateInsights_JoinsPreviousSpendByCategoryID(t *testing.T) {
	// Two categories named Food. Spend moves between them; each insight must
	// compare against its own category's previous total, not the shared name.
	foodA := cat("Food", entity.CategoryTypeExpense, "#ef4444")
	foodB := cat("Food", entity.CategoryTypeExpense, "#f97316")
	categories := []*entity.Category{foodA, foodB}

	current := []*entity.Transaction{
		tx("200", entity.TransactionTypeExpense, &foodA.ID, day(2024, time.March, 1)),
		tx("100", entity.TransactionTypeExpense, &foodB.ID, day(2024, time.March, 2)),
	}
	previous := []*entity.Transaction{
		tx("100", entity.TransactionTypeExpense, &foodA.ID, day(2024, time.February, 1)),
		tx("100", entity.TransactionTypeExpense, &foodB.ID, day(2024, time.February, 2)),
	}

	insights := GenerateInsights(current, previous, categories)

	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}
	byID := map[string]float64{}
	for _, insight := range insights {
		byID[insight.CategoryID.String()] = insight.Change
	}
	if byID[foodA.ID.String()] != 100 {
		t.Errorf("foodA change = %v, want 100", byID[foodA.ID.String()])
	}
	if byID[foodB.ID.String()] != 0 {
		t.Errorf("foodB change = %v, want 0", byID[foodB.ID.String()])
	}
}

func TestGenerateInsights_IgnoresIncomeInBothPeriods(t *testing.T) {
	food := cat("Food", entity.CategoryTypeExpense, "#ef4444")
	salary := cat("Salary", entity.CategoryTypeIncome, "#10b981")
	categories := []*entity.Category{food, salary}

	current := []*entity.Transaction{
		tx("100", entity.TransactionTypeExpense, &food.ID, day(2024, time.March, 1)),
		tx("5000", entity.TransactionTypeIncome, &salary.ID, day(2024, time.March, 2)),
	}
	previous := []*entity.Transaction{
		tx("100", entity.TransactionTypeExpense, &food.ID, day(2024, time.February, 1)),
		tx("4000", entity.TransactionTypeIncome, &salary.ID, day(2024, time.February, 2)),
	}

	insights := GenerateInsights(current, previous, categories)

	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Category != "Food" {
		t.Errorf("Category = %s, want Food", insights[0].Category)
	}
	if !insights[0].Amount.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Amount = %s, want 100", insights[0].Amount)
	}
}
