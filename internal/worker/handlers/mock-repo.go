package worker_handler

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) FindByID(ctx context.Context, orgID, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, taskID)
	return args.Get(0).(*entity.CaseTaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskStore) ListOverdue(ctx context.Context, now time.Time, remindEvery time.Duration) ([]entity.OverdueTask, *app_errors.AppError) {
	args := m.Called(ctx, now, remindEvery)
	return args.Get(0).([]entity.OverdueTask), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskStore) BatchMarkReminded(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, taskIDs, at)
	return args.Get(0).(*app_errors.AppError)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

type MockNotificationFinder struct {
	mock.Mock
}

func (m *MockNotificationFinder) FindByID(ctx context.Context, id string) (*entity.NotificationEntity, *app_errors.AppError) {
	args := m.Called(ctx, id)
	return args.Get(0).(*entity.NotificationEntity), args.Get(1).(*app_errors.AppError)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendNotificationEmail(ctx context.Context, to, name string, n *entity.NotificationEntity) error {
	args := m.Called(ctx, to, name, n)
	return args.Error(0)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) *app_errors.AppError {
	args := m.Called(ctx)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTx) Rollback(ctx context.Context) *app_errors.AppError {
	args := m.Called(ctx)
	return args.Get(0).(*app_errors.AppError)
}

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (tx.Tx, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).(tx.Tx), args.Get(1).(*app_errors.AppError)
}
