// Package cache provides Redis-backed caching for dashboard summaries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finsight/backend/internal/application/adapter"
)

// summaryKeyPrefix namespaces summary cache keys so per-user invalidation
// can match on a pattern.
const summaryKeyPrefix = "summary"

// redisSummaryCache implements the adapter.SummaryCache interface.
type redisSummaryCache struct {
	client *redis.Client
}

// NewRedisSummaryCache creates a new Redis-backed summary cache.
func NewRedisSummaryCache(client *redis.Client) adapter.SummaryCache {
	return &redisSummaryCache{
		client: client,
	}
}

// Get retrieves a cached summary for a user and range key.
// A nil summary with a nil error means a cache miss.
func (c *redisSummaryCache) Get(ctx context.Context, userID uuid.UUID, rangeKey string) (*adapter.CachedSummary, error) {
	data, err := c.client.Get(ctx, summaryKey(userID, rangeKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var summary adapter.CachedSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		// Treat a corrupt entry as a miss so the caller recomputes it.
		return nil, nil
	}
	return &summary, nil
}

// Set stores a summary for a user and range key with a TTL.
func (c *redisSummaryCache) Set(ctx context.Context, userID uuid.UUID, rangeKey string, summary *adapter.CachedSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(userID, rangeKey), data, ttl).Err()
}

// InvalidateUser removes all cached summaries for a user.
func (c *redisSummaryCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s:%s:*", summaryKeyPrefix, userID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func summaryKey(userID uuid.UUID, rangeKey string) string {
	return fmt.Sprintf("%s:%s:%s", summaryKeyPrefix, userID, rangeKey)
}
