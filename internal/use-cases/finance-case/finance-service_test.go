package finance_case

import (
	"context"
	"testing"
	"time"

	finance_dto "github.com/Xenn-00/fitout-meister/internal/dtos/finance-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var financeNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

var accounts = entity.Session{UserID: "acc-1", OrgID: "org-1", Name: "Ada", Role: entity.RoleAccountsTeam}

type financeMocks struct {
	repo      *MockFinanceRepo
	cases     *MockCaseFinder
	txManager *MockTxManager
	tx        *MockTx
	activity  *use_cases.MockActivityLogger
	publisher *use_cases.MockPublisher
}

func newTestFinanceService(strict bool) (*FinanceService, *financeMocks) {
	m := &financeMocks{
		repo:      new(MockFinanceRepo),
		cases:     new(MockCaseFinder),
		txManager: new(MockTxManager),
		tx:        new(MockTx),
		activity:  new(use_cases.MockActivityLogger),
		publisher: new(use_cases.MockPublisher),
	}
	s := &FinanceService{
		repo:          m.repo,
		cases:         m.cases,
		txManager:     m.txManager,
		activity:      m.activity,
		publisher:     m.publisher,
		strictBalance: strict,
		now:           func() time.Time { return financeNow },
	}
	return s, m
}

func project() *entity.CaseEntity {
	return &entity.CaseEntity{ID: "p-1", OrgID: "org-1", Status: entity.CaseExecution, IsProject: true}
}

// Test 1: erste Einzahlung legt die Kostenstelle an und bucht in einer Transaktion
func TestAddTransaction_PayInCreatesCostCenter(t *testing.T) {
	ctx := context.Background()
	service, m := newTestFinanceService(false)

	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(project(), (*app_errors.AppError)(nil))
	m.txManager.On("Begin", ctx).Return(m.tx, (*app_errors.AppError)(nil))
	m.tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	m.tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))
	m.repo.On("EnsureCostCenter", ctx, m.tx, "p-1", financeNow).Return((*app_errors.AppError)(nil))
	m.repo.On("LockCostCenter", ctx, m.tx, "p-1").Return(entity.NewCostCenter("p-1", financeNow), (*app_errors.AppError)(nil))
	m.repo.On("InsertTransaction", ctx, m.tx, mock.MatchedBy(func(txn *entity.TransactionEntity) bool {
		return txn.Type == entity.PayIn &&
			txn.Amount.Equal(decimal.NewFromInt(5000)) &&
			txn.Status == entity.TransactionCompleted &&
			txn.CreatedBy == accounts.UserID
	})).Return((*app_errors.AppError)(nil))
	m.repo.On("UpdateCostCenter", ctx, m.tx, mock.MatchedBy(func(cc *entity.CostCenterEntity) bool {
		return cc.TotalPayIn.Equal(decimal.NewFromInt(5000)) &&
			cc.TotalPayOut.IsZero() &&
			cc.RemainingBudget.Equal(decimal.NewFromInt(5000))
	})).Return((*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, accounts, mock.MatchedBy(func(a emitter.Activity) bool {
		return a.CaseID == "p-1" && a.Action == entity.ActivityTransactionPosted
	})).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.CostCenters).Return(nil)

	resp, err := service.AddTransaction(ctx, accounts, &finance_dto.AddTransactionRequest{
		ProjectID: "p-1",
		Amount:    decimal.NewFromInt(5000),
		Type:      string(entity.PayIn),
	})

	require.Nil(t, err)
	assert.True(t, resp.CostCenter.RemainingBudget.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, financeNow, resp.Transaction.Date)
	m.repo.AssertNotCalled(t, "FindCostCenter", mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertExpectations(t)
	m.tx.AssertExpectations(t)
}

// Test 2: Auszahlung über dem Guthaben wird abgelehnt, ohne zu schreiben
func TestAddTransaction_PayOutExceedsBalance(t *testing.T) {
	ctx := context.Background()
	service, m := newTestFinanceService(false)

	cc := entity.NewCostCenter("p-1", financeNow)
	cc.TotalPayIn = decimal.NewFromInt(5000)
	cc.RemainingBudget = decimal.NewFromInt(5000)
	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(project(), (*app_errors.AppError)(nil))
	m.repo.On("FindCostCenter", ctx, nil, "p-1").Return(cc, (*app_errors.AppError)(nil))

	_, err := service.AddTransaction(ctx, accounts, &finance_dto.AddTransactionRequest{
		ProjectID: "p-1",
		Amount:    decimal.NewFromInt(6000),
		Type:      string(entity.PayOut),
	})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, "finance.insufficient_balance", err.MessageKey)
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
	m.repo.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "UpdateCostCenter", mock.Anything, mock.Anything, mock.Anything)
}

// Test 3: Auszahlung ohne Kostenstelle hat Guthaben 0
func TestAddTransaction_PayOutWithoutCostCenter(t *testing.T) {
	ctx := context.Background()
	service, m := newTestFinanceService(false)

	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(project(), (*app_errors.AppError)(nil))
	m.repo.On("FindCostCenter", ctx, nil, "p-1").Return((*entity.CostCenterEntity)(nil), (*app_errors.AppError)(nil))

	_, err := service.AddTransaction(ctx, accounts, &finance_dto.AddTransactionRequest{
		ProjectID: "p-1",
		Amount:    decimal.NewFromInt(1),
		Type:      string(entity.PayOut),
	})

	require.NotNil(t, err)
	assert.Equal(t, "finance.insufficient_balance", err.MessageKey)
}

// Test 4: im Strict-Modus greift die Prüfung auch unter der Sperre, danach Rollback
func TestAddTransaction_StrictRecheckUnderLock(t *testing.T) {
	ctx := context.Background()
	service, m := newTestFinanceService(true)

	before := entity.NewCostCenter("p-1", financeNow)
	before.TotalPayIn = decimal.NewFromInt(1000)
	locked := entity.NewCostCenter("p-1", financeNow)
	locked.TotalPayIn = decimal.NewFromInt(1000)
	locked.TotalPayOut = decimal.NewFromInt(800)

	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(project(), (*app_errors.AppError)(nil))
	m.repo.On("FindCostCenter", ctx, nil, "p-1").Return(before, (*app_errors.AppError)(nil))
	m.txManager.On("Begin", ctx).Return(m.tx, (*app_errors.AppError)(nil))
	m.tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	m.repo.On("EnsureCostCenter", ctx, m.tx, "p-1", financeNow).Return((*app_errors.AppError)(nil))
	m.repo.On("LockCostCenter", ctx, m.tx, "p-1").Return(locked, (*app_errors.AppError)(nil))

	_, err := service.AddTransaction(ctx, accounts, &finance_dto.AddTransactionRequest{
		ProjectID: "p-1",
		Amount:    decimal.NewFromInt(500),
		Type:      string(entity.PayOut),
	})

	require.NotNil(t, err)
	assert.Equal(t, "finance.insufficient_balance", err.MessageKey)
	m.tx.AssertNotCalled(t, "Commit", mock.Anything)
	m.tx.AssertCalled(t, "Rollback", ctx)
	m.repo.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// Test 5: Betrag muss positiv sein, Leads sind keine Projekte, Rollen werden geprüft
func TestAddTransaction_Validation(t *testing.T) {
	ctx := context.Background()

	service, _ := newTestFinanceService(false)
	_, err := service.AddTransaction(ctx, accounts, &finance_dto.AddTransactionRequest{ProjectID: "p-1", Amount: decimal.Zero, Type: "PAY_IN"})
	require.NotNil(t, err)
	assert.Equal(t, "validation.positive_amount", err.MessageKey)

	service, m := newTestFinanceService(false)
	lead := project()
	lead.IsProject = false
	lead.Status = entity.CaseNew
	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(lead, (*app_errors.AppError)(nil))
	_, err = service.AddTransaction(ctx, accounts, &finance_dto.AddTransactionRequest{ProjectID: "p-1", Amount: decimal.NewFromInt(10), Type: "PAY_IN"})
	require.NotNil(t, err)
	assert.Equal(t, "finance.not_a_project", err.MessageKey)

	sales := entity.Session{UserID: "s-1", OrgID: "org-1", Role: entity.RoleSalesTeam}
	_, err = service.AddTransaction(ctx, sales, &finance_dto.AddTransactionRequest{ProjectID: "p-1", Amount: decimal.NewFromInt(10), Type: "PAY_IN"})
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
}

// Test 6: Projekt ohne Buchungen liefert leere Kostenstelle
func TestGetCostCenter_Empty(t *testing.T) {
	ctx := context.Background()
	service, m := newTestFinanceService(false)

	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(project(), (*app_errors.AppError)(nil))
	m.repo.On("FindCostCenter", ctx, nil, "p-1").Return((*entity.CostCenterEntity)(nil), (*app_errors.AppError)(nil))

	cc, err := service.GetCostCenter(ctx, accounts, "p-1")

	require.Nil(t, err)
	assert.True(t, cc.RemainingBudget.IsZero())
	assert.Equal(t, "p-1", cc.ProjectID)
}

// Test 7: Paging der Buchungsliste
func TestListTransactions_Paging(t *testing.T) {
	ctx := context.Background()
	service, m := newTestFinanceService(false)

	m.cases.On("FindByID", ctx, nil, "org-1", "p-1").Return(project(), (*app_errors.AppError)(nil))
	m.repo.On("ListTransactions", ctx, "p-1", 10, 20).Return([]entity.TransactionEntity{}, (*app_errors.AppError)(nil))

	_, err := service.ListTransactions(ctx, accounts, "p-1", finance_dto.TransactionListFilter{Limit: 10, Page: 3})

	require.Nil(t, err)
	m.repo.AssertExpectations(t)
}
