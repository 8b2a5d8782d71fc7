package cache

import (
	"context"
	"errors"
	"time"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redis *redis.Client) *RedisCache {
	return &RedisCache{client: redis}
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, app_errors.NewInternalError(err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		// kaputter Eintrag zählt als Miss, der Aufrufer lädt neu
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError {
	return utils.SetCacheData(ctx, r.client, key, &value, ttl)
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	return utils.DeleteCacheData(ctx, r.client, key)
}
