package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// memTransactionRepo is a map-backed TransactionRepository for use case tests.
type memTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *memTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *memTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return transaction, nil
}

func (r *memTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *memTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	var matched []*entity.TransactionWithCategory
	for _, t := range r.transactions {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		matched = append(matched, &entity.TransactionWithCategory{Transaction: t})
	}
	return &adapter.TransactionListResult{
		Transactions: matched,
		Total:        int64(len(matched)),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   1,
	}, nil
}

func (r *memTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	if _, ok := r.transactions[transaction.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *memTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.transactions[id]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *memTransactionRepo) DeleteByCategory(ctx context.Context, categoryID uuid.UUID, userID uuid.UUID) (int64, error) {
	var deleted int64
	for id, t := range r.transactions {
		if t.UserID == userID && t.CategoryID != nil && *t.CategoryID == categoryID {
			delete(r.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}

// memCategoryRepo serves a fixed category set.
type memCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newMemCategoryRepo(categories ...*entity.Category) *memCategoryRepo {
	repo := &memCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *memCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *memCategoryRepo) CreateBatch(ctx context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return nil
}

func (r *memCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *memCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	r.categories[category.ID] = category
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.UserID == userID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// spyCache counts invalidations.
type spyCache struct {
	invalidations int
}

func (c *spyCache) Get(ctx context.Context, userID uuid.UUID, rangeKey string) (*adapter.CachedSummary, error) {
	return nil, nil
}

func (c *spyCache) Set(ctx context.Context, userID uuid.UUID, rangeKey string, summary *adapter.CachedSummary, ttl time.Duration) error {
	return nil
}

func (c *spyCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	c.invalidations++
	return nil
}

func ownedCategory(userID uuid.UUID) *entity.Category {
	return &entity.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Food",
		Color:  "#ef4444",
		Icon:   "utensils",
		Type:   entity.CategoryTypeExpense,
	}
}

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	category := ownedCategory(userID)
	repo := newMemTransactionRepo()
	cache := &spyCache{}
	uc := NewCreateTransactionUseCase(repo, newMemCategoryRepo(category), cache)

	output, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Amount:      decimal.RequireFromString("42.50"),
		Type:        entity.TransactionTypeExpense,
		CategoryID:  &category.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Transaction.Description != "Groceries" {
		t.Errorf("Description = %s, want Groceries", output.Transaction.Description)
	}
	if output.Transaction.Category == nil || output.Transaction.Category.Name != "Food" {
		t.Error("expected the category to be resolved in the output")
	}
	if len(repo.transactions) != 1 {
		t.Errorf("expected 1 stored transaction, got %d", len(repo.transactions))
	}
	if cache.invalidations != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cache.invalidations)
	}
}

func TestCreateTransactionUseCase_Validation(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()
	foreignCategory := ownedCategory(otherUser)
	uc := NewCreateTransactionUseCase(newMemTransactionRepo(), newMemCategoryRepo(foreignCategory), nil)

	valid := CreateTransactionInput{
		UserID:      userID,
		Date:        time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Amount:      decimal.RequireFromString("10"),
		Type:        entity.TransactionTypeExpense,
	}

	tests := []struct {
		name    string
		mutate  func(input *CreateTransactionInput)
		wantErr error
	}{
		{
			name:    "empty description",
			mutate:  func(input *CreateTransactionInput) { input.Description = "" },
			wantErr: domainerror.ErrInvalidTransactionDate,
		},
		{
			name:    "zero date",
			mutate:  func(input *CreateTransactionInput) { input.Date = time.Time{} },
			wantErr: domainerror.ErrInvalidTransactionDate,
		},
		{
			name:    "invalid type",
			mutate:  func(input *CreateTransactionInput) { input.Type = "transfer" },
			wantErr: domainerror.ErrInvalidTransactionType,
		},
		{
			name:    "zero amount",
			mutate:  func(input *CreateTransactionInput) { input.Amount = decimal.Zero },
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(input *CreateTransactionInput) { input.Amount = decimal.RequireFromString("-5") },
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:    "foreign category",
			mutate:  func(input *CreateTransactionInput) { input.CategoryID = &foreignCategory.ID },
			wantErr: domainerror.ErrCategoryNotOwnedByUser,
		},
		{
			name: "unknown category",
			mutate: func(input *CreateTransactionInput) {
				id := uuid.New()
				input.CategoryID = &id
			},
			wantErr: domainerror.ErrCategoryNotFoundForTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	category := ownedCategory(userID)
	repo := newMemTransactionRepo()
	cache := &spyCache{}

	existing := entity.NewTransaction(
		userID,
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		"Groceries",
		decimal.RequireFromString("42.50"),
		entity.TransactionTypeExpense,
		nil,
	)
	repo.transactions[existing.ID] = existing

	uc := NewUpdateTransactionUseCase(repo, newMemCategoryRepo(category), cache)

	newAmount := decimal.RequireFromString("55")
	output, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: existing.ID,
		UserID:        userID,
		Amount:        &newAmount,
		CategoryID:    &category.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.Transaction.Amount.Equal(newAmount) {
		t.Errorf("Amount = %s, want 55", output.Transaction.Amount)
	}
	if output.Transaction.Description != "Groceries" {
		t.Errorf("Description changed unexpectedly to %s", output.Transaction.Description)
	}
	if output.Transaction.Category == nil || output.Transaction.Category.ID != category.ID {
		t.Error("expected the new category in the output")
	}
	if cache.invalidations != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cache.invalidations)
	}
}

func TestUpdateTransactionUseCase_ClearCategory(t *testing.T) {
	userID := uuid.New()
	category := ownedCategory(userID)
	repo := newMemTransactionRepo()

	existing := entity.NewTransaction(
		userID,
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		"Groceries",
		decimal.RequireFromString("42.50"),
		entity.TransactionTypeExpense,
		&category.ID,
	)
	repo.transactions[existing.ID] = existing

	uc := NewUpdateTransactionUseCase(repo, newMemCategoryRepo(category), nil)

	output, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: existing.ID,
		UserID:        userID,
		ClearCategory: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Transaction.CategoryID != nil {
		t.Error("expected the category reference to be cleared")
	}
}

func TestUpdateTransactionUseCase_Authorization(t *testing.T) {
	userID := uuid.New()
	repo := newMemTransactionRepo()

	existing := entity.NewTransaction(
		userID,
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		"Groceries",
		decimal.RequireFromString("42.50"),
		entity.TransactionTypeExpense,
		nil,
	)
	repo.transactions[existing.ID] = existing

	uc := NewUpdateTransactionUseCase(repo, newMemCategoryRepo(), nil)

	t.Run("wrong user", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: uuid.New(),
			UserID:        userID,
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestDeleteTransactionUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := newMemTransactionRepo()
	cache := &spyCache{}

	existing := entity.NewTransaction(
		userID,
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		"Groceries",
		decimal.RequireFromString("42.50"),
		entity.TransactionTypeExpense,
		nil,
	)
	repo.transactions[existing.ID] = existing

	uc := NewDeleteTransactionUseCase(repo, cache)

	output, err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: existing.ID,
		UserID:        userID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Success {
		t.Error("expected Success to be true")
	}
	if len(repo.transactions) != 0 {
		t.Errorf("expected the transaction to be removed, %d remain", len(repo.transactions))
	}
	if cache.invalidations != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cache.invalidations)
	}

	t.Run("wrong user is rejected before delete", func(t *testing.T) {
		again := entity.NewTransaction(userID, time.Now(), "Coffee", decimal.RequireFromString("5"), entity.TransactionTypeExpense, nil)
		repo.transactions[again.ID] = again

		_, err := uc.Execute(context.Background(), DeleteTransactionInput{
			TransactionID: again.ID,
			UserID:        uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
		if _, ok := repo.transactions[again.ID]; !ok {
			t.Error("transaction must survive an unauthorized delete")
		}
	})
}

func TestListTransactionsUseCase_PaginationDefaults(t *testing.T) {
	userID := uuid.New()
	repo := newMemTransactionRepo()
	for i := 0; i < 3; i++ {
		transaction := entity.NewTransaction(
			userID,
			time.Date(2024, time.March, 10+i, 0, 0, 0, 0, time.UTC),
			"Groceries",
			decimal.RequireFromString("10"),
			entity.TransactionTypeExpense,
			nil,
		)
		repo.transactions[transaction.ID] = transaction
	}

	uc := NewListTransactionsUseCase(repo)

	output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Pagination.Page != 1 || output.Pagination.Limit != 20 {
		t.Errorf("pagination defaults = %d/%d, want 1/20", output.Pagination.Page, output.Pagination.Limit)
	}
	if len(output.Transactions) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(output.Transactions))
	}

	t.Run("limit is capped", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: userID, Limit: 500})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Pagination.Limit != 100 {
			t.Errorf("Limit = %d, want 100", output.Pagination.Limit)
		}
	})
}
