package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisTokenBlacklistRepository struct {
	redis *redis.Client
}

func NewRedisTokenBlacklistRepository(redisClient *redis.Client) *RedisTokenBlacklistRepository {
	return &RedisTokenBlacklistRepository{redis: redisClient}
}

func blacklistKey(token string) string {
	return "auth:blacklist:" + token
}

func (r *RedisTokenBlacklistRepository) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to track.
		return nil
	}
	return r.redis.Set(ctx, blacklistKey(token), 1, ttl).Err()
}

func (r *RedisTokenBlacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	err := r.redis.Get(ctx, blacklistKey(token)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
