package case_case

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockCaseRepo struct {
	mock.Mock
}

func (m *MockCaseRepo) Create(ctx context.Context, t tx.Tx, c *entity.CaseEntity) *app_errors.AppError {
	args := m.Called(ctx, t, c)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockCaseRepo) CreateMany(ctx context.Context, t tx.Tx, cases []entity.CaseEntity) (int, *app_errors.AppError) {
	args := m.Called(ctx, t, cases)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockCaseRepo) FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, orgID, caseID)
	return args.Get(0).(*entity.CaseEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockCaseRepo) List(ctx context.Context, orgID string, filter entity.CaseFilter) ([]entity.CaseEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]entity.CaseEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockCaseRepo) TransitionStatus(ctx context.Context, t tx.Tx, orgID, caseID string, from, to entity.CaseStatus, isProject bool) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, orgID, caseID, from, to, isProject)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockCaseRepo) Update(ctx context.Context, orgID, caseID string, model entity.CaseUpdate) (*entity.CaseEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, caseID, model)
	return args.Get(0).(*entity.CaseEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockCaseRepo) Delete(ctx context.Context, orgID, caseID string) *app_errors.AppError {
	args := m.Called(ctx, orgID, caseID)
	return args.Get(0).(*app_errors.AppError)
}

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t tx.Tx, task *entity.CaseTaskEntity) *app_errors.AppError {
	args := m.Called(ctx, t, task)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) FindByID(ctx context.Context, orgID, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, taskID)
	return args.Get(0).(*entity.CaseTaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) HasActiveOfType(ctx context.Context, caseID string, taskType entity.TaskType) (bool, *app_errors.AppError) {
	args := m.Called(ctx, caseID, taskType)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) List(ctx context.Context, orgID string, filter entity.TaskFilter) ([]entity.CaseTaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]entity.CaseTaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) UpdateStatus(ctx context.Context, t tx.Tx, taskID string, from, to entity.TaskStatus, at time.Time) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, taskID, from, to, at)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) Reassign(ctx context.Context, taskID, assigneeID, assignedBy string, deadline *time.Time) *app_errors.AppError {
	args := m.Called(ctx, taskID, assigneeID, assignedBy, deadline)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListOverdue(ctx context.Context, now time.Time, remindEvery time.Duration) ([]entity.OverdueTask, *app_errors.AppError) {
	args := m.Called(ctx, now, remindEvery)
	return args.Get(0).([]entity.OverdueTask), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) BatchMarkReminded(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, taskIDs, at)
	return args.Get(0).(*app_errors.AppError)
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

type MockTaskRouter struct {
	mock.Mock
}

func (m *MockTaskRouter) RouteOnTransition(ctx context.Context, session entity.Session, caseID string, from, to entity.CaseStatus) (*case_dto.RouteResult, *app_errors.AppError) {
	args := m.Called(ctx, session, caseID, from, to)
	return args.Get(0).(*case_dto.RouteResult), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRouter) SpawnTask(ctx context.Context, session entity.Session, c *entity.CaseEntity, taskType entity.TaskType) (*case_dto.RouteResult, *app_errors.AppError) {
	args := m.Called(ctx, session, c, taskType)
	return args.Get(0).(*case_dto.RouteResult), args.Get(1).(*app_errors.AppError)
}
