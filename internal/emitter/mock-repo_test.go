package emitter_test

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *entity.NotificationEntity) *app_errors.AppError {
	args := m.Called(ctx, n)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockNotificationRepo) FindByID(ctx context.Context, id string) (*entity.NotificationEntity, *app_errors.AppError) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entity.NotificationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]entity.NotificationEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	return args.Get(0).([]entity.NotificationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Append(ctx context.Context, a *entity.CaseActivityEntity) *app_errors.AppError {
	args := m.Called(ctx, a)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockActivityRepo) ListByCase(ctx context.Context, caseID string, limit, offset int) ([]entity.CaseActivityEntity, *app_errors.AppError) {
	args := m.Called(ctx, caseID, limit, offset)
	return args.Get(0).([]entity.CaseActivityEntity), args.Get(1).(*app_errors.AppError)
}
