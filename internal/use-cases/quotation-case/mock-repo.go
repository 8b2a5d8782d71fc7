package quotation_case

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockQuotationRepo struct {
	mock.Mock
}

func (m *MockQuotationRepo) NextVersion(ctx context.Context, t tx.Tx, caseID string) (int, *app_errors.AppError) {
	args := m.Called(ctx, t, caseID)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockQuotationRepo) CreateQuotation(ctx context.Context, t tx.Tx, q *entity.CaseQuotationEntity) *app_errors.AppError {
	args := m.Called(ctx, t, q)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockQuotationRepo) FindQuotation(ctx context.Context, orgID, id string) (*entity.CaseQuotationEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(*entity.CaseQuotationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockQuotationRepo) ListQuotations(ctx context.Context, orgID, caseID string) ([]entity.CaseQuotationEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, caseID)
	return args.Get(0).([]entity.CaseQuotationEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockQuotationRepo) UpdateAudit(ctx context.Context, id string, from, to entity.AuditStatus, auditedBy string, prCode *string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, id, from, to, auditedBy, prCode)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockQuotationRepo) UpdateDecision(ctx context.Context, id string, to entity.QuotationStatus, decidedBy string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, id, to, decidedBy)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockQuotationRepo) CreateBOQ(ctx context.Context, boq *entity.CaseBOQEntity) *app_errors.AppError {
	args := m.Called(ctx, boq)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockQuotationRepo) ListBOQs(ctx context.Context, orgID, caseID string) ([]entity.CaseBOQEntity, *app_errors.AppError) {
	args := m.Called(ctx, orgID, caseID)
	return args.Get(0).([]entity.CaseBOQEntity), args.Get(1).(*app_errors.AppError)
}

type MockCaseFinder struct {
	mock.Mock
}

func (m *MockCaseFinder) FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, orgID, caseID)
	return args.Get(0).(*entity.CaseEntity), args.Get(1).(*app_errors.AppError)
}

type MockTaskSpawner struct {
	mock.Mock
}

func (m *MockTaskSpawner) SpawnTask(ctx context.Context, session entity.Session, c *entity.CaseEntity, taskType entity.TaskType) (*case_dto.RouteResult, *app_errors.AppError) {
	args := m.Called(ctx, session, c, taskType)
	return args.Get(0).(*case_dto.RouteResult), args.Get(1).(*app_errors.AppError)
}
