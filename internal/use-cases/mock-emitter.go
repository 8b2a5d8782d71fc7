package use_cases

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

var (
	_ emitter.NotificationEmitter = (*MockNotificationEmitter)(nil)
	_ emitter.ActivityLogger      = (*MockActivityLogger)(nil)
)

type MockNotificationEmitter struct {
	mock.Mock
}

func (m *MockNotificationEmitter) Emit(ctx context.Context, orgID string, n emitter.Notification) (*entity.NotificationEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, n)
	return args.Get(0).(*entity.NotificationEntity), args.Get(1).(*app_errors.AppError)
}

type MockActivityLogger struct {
	mock.Mock
}

func (m *MockActivityLogger) Log(ctx context.Context, actor entity.Session, a emitter.Activity) *app_errors.AppError {
	args := m.Called(ctx, actor, a)
	return args.Get(0).(*app_errors.AppError)
}
