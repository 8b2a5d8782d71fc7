package cache

import (
	"context"
	"time"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

// Cache speichert JSON-serialisierbare Werte. Get dekodiert in dest und meldet einen Treffer mit true.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError)
	Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError
	Del(ctx context.Context, key string) error
}
