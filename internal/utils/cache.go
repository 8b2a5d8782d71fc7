package utils

import (
	"context"
	"errors"
	"time"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache-Schlüssel. Alle Einträge sind pro Organisation getrennt.
const (
	UserCacheTTL      = 10 * time.Minute
	DirectoryCacheTTL = 5 * time.Minute
)

func UserCacheKey(userID string) string {
	return "user:" + userID
}

func DirectoryCacheKey(orgID string) string {
	return "directory:" + orgID
}

// GetCacheData liest cacheKey aus Redis und dekodiert den JSON-Wert nach T.
// Ein Cache-Miss liefert (nil, nil).
func GetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string) (*T, *app_errors.AppError) {
	val, err := rdb.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, app_errors.NewInternalError(err)
	}

	var data T
	if err := json.Unmarshal(val, &data); err != nil {
		return nil, app_errors.NewInternalError(err)
	}
	return &data, nil
}

// SetCacheData speichert data als JSON mit Ablaufzeit.
func SetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string, data *T, expire time.Duration) *app_errors.AppError {
	bytes, err := json.Marshal(data)
	if err != nil {
		return app_errors.NewInternalError(err)
	}

	if err := rdb.Set(ctx, cacheKey, bytes, expire).Err(); err != nil {
		return app_errors.NewInternalError(err)
	}
	return nil
}

func DeleteCacheData(ctx context.Context, rdb *redis.Client, cacheKey string) error {
	return rdb.Del(ctx, cacheKey).Err()
}
