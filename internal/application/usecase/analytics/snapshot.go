package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// snapshot is a read-only view of a user's transactions and categories. The
// analytics core operates on snapshots only; it never writes.
type snapshot struct {
	transactions []*entity.Transaction
	categories   []*entity.Category
}

// loadSnapshot fetches a user's transactions and categories concurrently.
func loadSnapshot(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	userID uuid.UUID,
) (*snapshot, error) {
	var snap snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		transactions, err := transactionRepo.FindByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		snap.transactions = transactions
		return nil
	})
	g.Go(func() error {
		categories, err := categoryRepo.FindByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		snap.categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
