package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client backed by an in-process miniredis instance.
// The instance is shared across the suite; use ClearRedis between
// scenarios.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	return redis.NewClient(&redis.Options{
		Addr: miniRedis.Addr(),
	})
}

// ClearRedis flushes all keys.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
