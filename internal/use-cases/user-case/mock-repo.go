package user_case

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) ListByOrg(ctx context.Context, orgID string) ([]entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) ListActiveByRoles(ctx context.Context, orgID string, roles []entity.UserRole) ([]entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, roles)
	return args.Get(0).([]entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) FirstActiveByRole(ctx context.Context, orgID string, role entity.UserRole) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, role)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, userID string, model entity.UserUpdate) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID, model)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}
