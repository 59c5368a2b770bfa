package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
)

// unknownCategoryName labels transactions whose category cannot be resolved
// in the export.
const unknownCategoryName = "Unknown"

// ExportTransactionsInput represents the input for exporting transactions.
// ExportedAt stamps the filename; it is supplied by the caller.
type ExportTransactionsInput struct {
	UserID     uuid.UUID
	Range      Range
	ExportedAt time.Time
}

// ExportTransactionsOutput represents the CSV export result.
type ExportTransactionsOutput struct {
	Filename string
	Content  []byte
}

// ExportTransactionsUseCase handles exporting period-filtered transactions as CSV.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute renders the current period's transactions as CSV with the columns
// Date, Type, Category, Description, Amount.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	if err := validateRange(input.Range); err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(ctx, uc.transactionRepo, uc.categoryRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[uuid.UUID]string, len(snap.categories))
	for _, c := range snap.categories {
		categoryNames[c.ID] = c.Name
	}

	split := FilterByRange(snap.transactions, input.Range)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	records := [][]string{{"Date", "Type", "Category", "Description", "Amount"}}
	for _, t := range split.Current {
		name := unknownCategoryName
		if t.CategoryID != nil {
			if n, ok := categoryNames[*t.CategoryID]; ok {
				name = n
			}
		}
		records = append(records, []string{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			name,
			t.Description,
			t.Amount.String(),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return &ExportTransactionsOutput{
		Filename: fmt.Sprintf("finance-report-%s.csv", input.ExportedAt.Format("2006-01-02")),
		Content:  buf.Bytes(),
	}, nil
}
