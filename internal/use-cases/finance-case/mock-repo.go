package finance_case

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockFinanceRepo struct {
	mock.Mock
}

func (m *MockFinanceRepo) FindCostCenter(ctx context.Context, t tx.Tx, projectID string) (*entity.CostCenterEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, projectID)
	return args.Get(0).(*entity.CostCenterEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockFinanceRepo) EnsureCostCenter(ctx context.Context, t tx.Tx, projectID string, now time.Time) *app_errors.AppError {
	args := m.Called(ctx, t, projectID, now)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockFinanceRepo) LockCostCenter(ctx context.Context, t tx.Tx, projectID string) (*entity.CostCenterEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, projectID)
	return args.Get(0).(*entity.CostCenterEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockFinanceRepo) UpdateCostCenter(ctx context.Context, t tx.Tx, cc *entity.CostCenterEntity) *app_errors.AppError {
	args := m.Called(ctx, t, cc)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockFinanceRepo) InsertTransaction(ctx context.Context, t tx.Tx, txn *entity.TransactionEntity) *app_errors.AppError {
	args := m.Called(ctx, t, txn)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockFinanceRepo) ListTransactions(ctx context.Context, projectID string, limit, offset int) ([]entity.TransactionEntity, *app_errors.AppError) {
	args := m.Called(ctx, projectID, limit, offset)
	return args.Get(0).([]entity.TransactionEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockFinanceRepo) ListCostCenters(ctx context.Context, orgID string) ([]entity.CostCenterEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]entity.CostCenterEntity), args.Get(1).(*app_errors.AppError)
}

type MockCaseFinder struct {
	mock.Mock
}

func (m *MockCaseFinder) FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, orgID, caseID)
	return args.Get(0).(*entity.CaseEntity), args.Get(1).(*app_errors.AppError)
}
