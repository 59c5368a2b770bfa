package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
)

func setupCache(t *testing.T) (adapter.SummaryCache, *miniredis.Miniredis) {
	t.Helper()
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSummaryCache(client), server
}

func sampleSummary() *adapter.CachedSummary {
	return &adapter.CachedSummary{
		TotalIncome:    decimal.RequireFromString("3000"),
		TotalExpenses:  decimal.RequireFromString("400"),
		Balance:        decimal.RequireFromString("2600"),
		IncomeChange:   0,
		ExpensesChange: 100,
		BalanceChange:  -10,
	}
}

func TestRedisSummaryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache, _ := setupCache(t)

		summary, err := cache.Get(ctx, uuid.New(), "2024-03-01:2024-03-31")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if summary != nil {
			t.Errorf("expected miss, got %+v", summary)
		}
	})

	t.Run("set then get round trip", func(t *testing.T) {
		cache, _ := setupCache(t)
		userID := uuid.New()

		if err := cache.Set(ctx, userID, "2024-03-01:2024-03-31", sampleSummary(), 15*time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		got, err := cache.Get(ctx, userID, "2024-03-01:2024-03-31")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected cached summary, got miss")
		}
		if !got.TotalIncome.Equal(decimal.RequireFromString("3000")) {
			t.Errorf("expected total income 3000, got %s", got.TotalIncome)
		}
		if got.ExpensesChange != 100 {
			t.Errorf("expected expenses change 100, got %f", got.ExpensesChange)
		}
	})

	t.Run("entry expires after ttl", func(t *testing.T) {
		cache, server := setupCache(t)
		userID := uuid.New()

		if err := cache.Set(ctx, userID, "all", sampleSummary(), 15*time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		server.FastForward(16 * time.Minute)

		got, err := cache.Get(ctx, userID, "all")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Error("expected entry to expire")
		}
	})

	t.Run("invalidate user removes only that user's keys", func(t *testing.T) {
		cache, _ := setupCache(t)
		userID := uuid.New()
		otherID := uuid.New()

		for _, rangeKey := range []string{"all", "2024-03-01:2024-03-31", "2024-02-01:2024-02-29"} {
			if err := cache.Set(ctx, userID, rangeKey, sampleSummary(), 15*time.Minute); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}
		if err := cache.Set(ctx, otherID, "all", sampleSummary(), 15*time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		if err := cache.InvalidateUser(ctx, userID); err != nil {
			t.Fatalf("InvalidateUser failed: %v", err)
		}

		for _, rangeKey := range []string{"all", "2024-03-01:2024-03-31", "2024-02-01:2024-02-29"} {
			got, err := cache.Get(ctx, userID, rangeKey)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != nil {
				t.Errorf("expected key %q to be invalidated", rangeKey)
			}
		}

		got, err := cache.Get(ctx, otherID, "all")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Error("expected other user's entry to survive")
		}
	})

	t.Run("corrupt entry reads as miss", func(t *testing.T) {
		cache, server := setupCache(t)
		userID := uuid.New()

		server.Set("summary:"+userID.String()+":all", "{not json")

		got, err := cache.Get(ctx, userID, "all")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected corrupt entry to read as miss, got %+v", got)
		}
	})
}
