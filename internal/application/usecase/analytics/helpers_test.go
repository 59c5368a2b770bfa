package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

// testUserID is the user all fixtures belong to.
var testUserID = uuid.New()

// day builds a date-only timestamp in UTC.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// dayPtr is day returning a pointer, for Range bounds.
func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// tx builds a transaction fixture.
func tx(amount string, transactionType entity.TransactionType, categoryID *uuid.UUID, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:         uuid.New(),
		UserID:     testUserID,
		Date:       date,
		Amount:     decimal.RequireFromString(amount),
		Type:       transactionType,
		CategoryID: categoryID,
	}
}

// cat builds a category fixture.
func cat(name string, categoryType entity.CategoryType, color string) *entity.Category {
	return &entity.Category{
		ID:     uuid.New(),
		UserID: testUserID,
		Name:   name,
		Color:  color,
		Type:   categoryType,
	}
}
