package approval_case

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockApprovalRepo struct {
	mock.Mock
}

func (m *MockApprovalRepo) Create(ctx context.Context, req *entity.ApprovalRequestEntity) *app_errors.AppError {
	args := m.Called(ctx, req)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockApprovalRepo) FindByID(ctx context.Context, orgID, id string) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(*entity.ApprovalRequestEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockApprovalRepo) List(ctx context.Context, orgID string, filter entity.ApprovalFilter) ([]entity.ApprovalRequestEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]entity.ApprovalRequestEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockApprovalRepo) Decide(ctx context.Context, orgID, id string, expected entity.ApprovalStatus, decision entity.ApprovalDecision) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, id, expected, decision)
	return args.Get(0).(*entity.ApprovalRequestEntity), args.Get(1).(*app_errors.AppError)
}

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

type MockCaseFinder struct {
	mock.Mock
}

func (m *MockCaseFinder) FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, orgID, caseID)
	return args.Get(0).(*entity.CaseEntity), args.Get(1).(*app_errors.AppError)
}
