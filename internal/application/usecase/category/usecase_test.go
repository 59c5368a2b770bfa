package category

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
	return &adapter.TransactionListResult{}, nil
}

func (r *memTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *memTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
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

func TestCreateCategoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := newMemCategoryRepo()
	uc := NewCreateCategoryUseCase(repo)

	output, err := uc.Execute(context.Background(), CreateCategoryInput{
		UserID: userID,
		Name:   "Groceries",
		Type:   entity.CategoryTypeExpense,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Category.Name != "Groceries" {
		t.Errorf("Name = %s, want Groceries", output.Category.Name)
	}
	if output.Category.Color != entity.DefaultCategoryColor {
		t.Errorf("Color = %s, want default %s", output.Category.Color, entity.DefaultCategoryColor)
	}
	if output.Category.Icon != entity.DefaultCategoryIcon {
		t.Errorf("Icon = %s, want default %s", output.Category.Icon, entity.DefaultCategoryIcon)
	}
	if len(repo.categories) != 1 {
		t.Errorf("expected 1 stored category, got %d", len(repo.categories))
	}
}

func TestCreateCategoryUseCase_Validation(t *testing.T) {
	userID := uuid.New()
	existing := entity.NewCategory(userID, "Food", "#ef4444", "utensils", entity.CategoryTypeExpense)
	uc := NewCreateCategoryUseCase(newMemCategoryRepo(existing))

	tests := []struct {
		name    string
		input   CreateCategoryInput
		wantErr error
	}{
		{
			name:    "duplicate name",
			input:   CreateCategoryInput{UserID: userID, Name: "Food", Type: entity.CategoryTypeExpense},
			wantErr: domainerror.ErrCategoryNameExists,
		},
		{
			name:    "invalid color",
			input:   CreateCategoryInput{UserID: userID, Name: "Travel", Color: "red", Type: entity.CategoryTypeExpense},
			wantErr: domainerror.ErrInvalidColorFormat,
		},
		{
			name:    "invalid type",
			input:   CreateCategoryInput{UserID: userID, Name: "Travel", Type: "savings"},
			wantErr: domainerror.ErrInvalidCategoryType,
		},
		{
			name: "name too long",
			input: CreateCategoryInput{
				UserID: userID,
				Name:   "0123456789012345678901234567890123456789012345678901",
				Type:   entity.CategoryTypeExpense,
			},
			wantErr: domainerror.ErrCategoryNameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("same name allowed for another user", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserID: uuid.New(),
			Name:   "Food",
			Type:   entity.CategoryTypeExpense,
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestListCategoriesUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory(userID, "Food", "#ef4444", "utensils", entity.CategoryTypeExpense)
	salary := entity.NewCategory(userID, "Salary", "#10b981", "banknote", entity.CategoryTypeIncome)
	foreign := entity.NewCategory(uuid.New(), "Other", "#71717a", "tag", entity.CategoryTypeExpense)
	uc := NewListCategoriesUseCase(newMemCategoryRepo(food, salary, foreign))

	t.Run("all categories for user", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListCategoriesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Categories) != 2 {
			t.Errorf("expected 2 categories, got %d", len(output.Categories))
		}
	})

	t.Run("filtered by type", func(t *testing.T) {
		incomeType := entity.CategoryTypeIncome
		output, err := uc.Execute(context.Background(), ListCategoriesInput{UserID: userID, Type: &incomeType})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Categories) != 1 || output.Categories[0].Name != "Salary" {
			t.Errorf("expected only Salary, got %+v", output.Categories)
		}
	})
}

func TestUpdateCategoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory(userID, "Food", "#ef4444", "utensils", entity.CategoryTypeExpense)
	repo := newMemCategoryRepo(food)
	uc := NewUpdateCategoryUseCase(repo)

	newName := "Dining"
	newColor := "#f97316"
	output, err := uc.Execute(context.Background(), UpdateCategoryInput{
		CategoryID: food.ID,
		UserID:     userID,
		Name:       &newName,
		Color:      &newColor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Category.Name != "Dining" || output.Category.Color != "#f97316" {
		t.Errorf("category not updated: %+v", output.Category)
	}
	if output.Category.Icon != "utensils" {
		t.Errorf("Icon changed unexpectedly to %s", output.Category.Icon)
	}

	t.Run("wrong user", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateCategoryInput{
			CategoryID: food.ID,
			UserID:     uuid.New(),
			Name:       &newName,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory) {
			t.Errorf("expected ErrNotAuthorizedToModifyCategory, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateCategoryInput{
			CategoryID: uuid.New(),
			UserID:     userID,
		})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestDeleteCategoryUseCase_CascadesToTransactions(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory(userID, "Food", "#ef4444", "utensils", entity.CategoryTypeExpense)
	categoryRepo := newMemCategoryRepo(food)

	transactionRepo := newMemTransactionRepo()
	for i := 0; i < 2; i++ {
		transaction := entity.NewTransaction(
			userID,
			time.Date(2024, time.March, 10+i, 0, 0, 0, 0, time.UTC),
			"Groceries",
			decimal.RequireFromString("10"),
			entity.TransactionTypeExpense,
			&food.ID,
		)
		transactionRepo.transactions[transaction.ID] = transaction
	}
	unrelated := entity.NewTransaction(
		userID,
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		"Cash",
		decimal.RequireFromString("20"),
		entity.TransactionTypeExpense,
		nil,
	)
	transactionRepo.transactions[unrelated.ID] = unrelated

	cache := &spyCache{}
	uc := NewDeleteCategoryUseCase(categoryRepo, transactionRepo, cache)

	output, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: food.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.DeletedTransactions != 2 {
		t.Errorf("DeletedTransactions = %d, want 2", output.DeletedTransactions)
	}
	if len(categoryRepo.categories) != 0 {
		t.Error("expected the category to be removed")
	}
	if len(transactionRepo.transactions) != 1 {
		t.Errorf("expected only the uncategorized transaction to remain, got %d", len(transactionRepo.transactions))
	}
	if cache.invalidations != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cache.invalidations)
	}
}

func TestDeleteCategoryUseCase_Authorization(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory(userID, "Food", "#ef4444", "utensils", entity.CategoryTypeExpense)
	uc := NewDeleteCategoryUseCase(newMemCategoryRepo(food), newMemTransactionRepo(), nil)

	_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: food.ID, UserID: uuid.New()})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory) {
		t.Errorf("expected ErrNotAuthorizedToModifyCategory, got %v", err)
	}
}
