// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366f1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category in the Finsight system.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      string
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the
// Application layer (UseCase) before calling this constructor.
func NewCategory(userID uuid.UUID, name, color, icon string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultCategorySeed describes one of the starter categories created for a
// new user at registration.
type DefaultCategorySeed struct {
	Name  string
	Type  CategoryType
	Color string
}

// DefaultCategories returns the starter category set seeded for new users.
func DefaultCategories() []DefaultCategorySeed {
	return []DefaultCategorySeed{
		{Name: "Salary", Type: CategoryTypeIncome, Color: "#10b981"},
		{Name: "Investment", Type: CategoryTypeIncome, Color: "#3b82f6"},
		{Name: "Food", Type: CategoryTypeExpense, Color: "#ef4444"},
		{Name: "Transport", Type: CategoryTypeExpense, Color: "#f59e0b"},
		{Name: "Bills", Type: CategoryTypeExpense, Color: "#8b5cf6"},
		{Name: "Shopping", Type: CategoryTypeExpense, Color: "#ec4899"},
		{Name: "Health", Type: CategoryTypeExpense, Color: "#06b6d4"},
		{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#f97316"},
		{Name: "Education", Type: CategoryTypeExpense, Color: "#6366f1"},
		{Name: "Other", Type: CategoryTypeExpense, Color: "#71717a"},
	}
}
