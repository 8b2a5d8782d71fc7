package use_cases

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/cache"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	json "github.com/goccy/go-json"
)

var _ cache.Cache = (*MockCache)(nil)

// MockCache ist ein In-Memory-Cache. Werte werden wie in Redis als JSON abgelegt.
type MockCache struct {
	Data map[string][]byte

	GetCalled int
	SetCalled int
	DelCalled int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: map[string][]byte{}}
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, *app_errors.AppError) {
	m.GetCalled++
	raw, ok := m.Data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, app_errors.NewInternalError(err)
	}
	return true, nil
}

func (m *MockCache) Set(ctx context.Context, key string, val any, ttl time.Duration) *app_errors.AppError {
	m.SetCalled++
	raw, err := json.Marshal(val)
	if err != nil {
		return app_errors.NewInternalError(err)
	}
	m.Data[key] = raw
	return nil
}

func (m *MockCache) Del(ctx context.Context, key string) error {
	m.DelCalled++
	delete(m.Data, key)
	return nil
}
