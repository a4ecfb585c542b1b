package limiter

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore adapts a redis client to the Store interface.
// RedisStore 将 redis 客户端适配为 Store 接口
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}
