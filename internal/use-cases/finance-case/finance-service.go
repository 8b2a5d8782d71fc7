package finance_case

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	finance_dto "github.com/Xenn-00/fitout-meister/internal/dtos/finance-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	activity_repo "github.com/Xenn-00/fitout-meister/internal/repo/activity-repo"
	case_repo "github.com/Xenn-00/fitout-meister/internal/repo/case-repo"
	finance_repo "github.com/Xenn-00/fitout-meister/internal/repo/finance-repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const defaultTransactionLimit = 50

var financeRoles = []entity.UserRole{entity.RoleAdmin, entity.RoleAccountsTeam, entity.RoleManager}

type caseFinder interface {
	FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError)
}

type FinanceService struct {
	repo          finance_repo.FinanceRepoContract
	cases         caseFinder
	txManager     tx.TxManager
	activity      emitter.ActivityLogger
	publisher     feed.Publisher
	strictBalance bool
	now           func() time.Time
}

// NewFinanceService: strictBalance wiederholt die Guthabenprüfung unter der Zeilensperre.
func NewFinanceService(db *pgxpool.Pool, publisher feed.Publisher, strictBalance bool) FinanceServiceContract {
	return &FinanceService{
		repo:          finance_repo.NewFinanceRepo(db),
		cases:         case_repo.NewCaseRepo(db),
		txManager:     tx.NewPgxTxManager(db),
		activity:      emitter.NewActivityLogger(activity_repo.NewActivityRepo(db)),
		publisher:     publisher,
		strictBalance: strictBalance,
		now:           time.Now,
	}
}

// AddTransaction bucht eine Ein- oder Auszahlung und hält die Kostenstelle in derselben Transaktion nach.
// Die Guthabenprüfung für PAY_OUT läuft standardmäßig vor der Transaktion.
func (s *FinanceService) AddTransaction(ctx context.Context, session entity.Session, req *finance_dto.AddTransactionRequest) (*finance_dto.AddTransactionResponse, *app_errors.AppError) {
	if !session.HasRole(financeRoles...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	txType := entity.TransactionType(req.Type)
	if !txType.IsValid() {
		return nil, app_errors.NewFieldValidationError("type", "invalid", "validation.tx_type")
	}
	if !req.Amount.IsPositive() {
		return nil, app_errors.NewFieldValidationError("amount", "gt", "validation.positive_amount")
	}

	project, err := s.project(ctx, session, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if txType == entity.PayOut {
		current, err := s.repo.FindCostCenter(ctx, nil, project.ID)
		if err != nil {
			return nil, err
		}
		balance := decimal.Zero
		if current != nil {
			balance = current.Balance()
		}
		if req.Amount.GreaterThan(balance) {
			return nil, insufficientBalance()
		}
	}

	id, uerr := uuid.NewV7()
	if uerr != nil {
		return nil, app_errors.NewInternalError(uerr)
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	txn := &entity.TransactionEntity{
		ID:          id.String(),
		ProjectID:   project.ID,
		Amount:      req.Amount,
		Type:        txType,
		Category:    strings.TrimSpace(req.Category),
		Date:        date,
		PaymentMode: strings.TrimSpace(req.PaymentMode),
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   session.UserID,
		Status:      entity.TransactionCompleted,
		CreatedAt:   now,
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	if err := s.repo.EnsureCostCenter(ctx, t, project.ID, now); err != nil {
		return nil, err
	}
	cc, err := s.repo.LockCostCenter(ctx, t, project.ID)
	if err != nil {
		return nil, err
	}
	if s.strictBalance && txType == entity.PayOut && req.Amount.GreaterThan(cc.Balance()) {
		return nil, insufficientBalance()
	}

	if err := s.repo.InsertTransaction(ctx, t, txn); err != nil {
		return nil, err
	}
	cc.Apply(txn)
	if err := s.repo.UpdateCostCenter(ctx, t, cc); err != nil {
		return nil, err
	}
	if err := t.Commit(ctx); err != nil {
		return nil, err
	}

	if lerr := s.activity.Log(ctx, session, emitter.Activity{
		CaseID:  project.ID,
		Action:  entity.ActivityTransactionPosted,
		Message: fmt.Sprintf("%s of %s recorded by %s", txType, txn.Amount.StringFixed(2), session.Name),
	}); lerr != nil {
		log.Warn().Err(lerr.Err).Str("project_id", project.ID).Msg("Aktivität zur Buchung konnte nicht gespeichert werden")
	}
	if perr := s.publisher.Publish(ctx, session.OrgID, feed.CostCenters); perr != nil {
		log.Warn().Err(perr).Str("org_id", session.OrgID).Msg("Kostenstellen-Feed konnte nicht benachrichtigt werden")
	}

	return &finance_dto.AddTransactionResponse{Transaction: txn, CostCenter: cc}, nil
}

// GetCostCenter liefert für Projekte ohne Buchung eine leere Kostenstelle.
func (s *FinanceService) GetCostCenter(ctx context.Context, session entity.Session, projectID string) (*entity.CostCenterEntity, *app_errors.AppError) {
	if !session.HasRole(financeRoles...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}
	project, err := s.project(ctx, session, projectID)
	if err != nil {
		return nil, err
	}

	cc, err := s.repo.FindCostCenter(ctx, nil, project.ID)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return entity.NewCostCenter(project.ID, project.UpdatedAt), nil
	}
	return cc, nil
}

func (s *FinanceService) ListCostCenters(ctx context.Context, session entity.Session) ([]entity.CostCenterEntity, *app_errors.AppError) {
	if !session.HasRole(financeRoles...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}
	return s.repo.ListCostCenters(ctx, session.OrgID)
}

func (s *FinanceService) ListTransactions(ctx context.Context, session entity.Session, projectID string, filter finance_dto.TransactionListFilter) ([]entity.TransactionEntity, *app_errors.AppError) {
	if !session.HasRole(financeRoles...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}
	if _, err := s.project(ctx, session, projectID); err != nil {
		return nil, err
	}

	limit := defaultTransactionLimit
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	return s.repo.ListTransactions(ctx, projectID, limit, offset)
}

// project lädt den Case der Organisation und verlangt, dass er bereits ein Projekt ist.
func (s *FinanceService) project(ctx context.Context, session entity.Session, projectID string) (*entity.CaseEntity, *app_errors.AppError) {
	c, err := s.cases.FindByID(ctx, nil, session.OrgID, projectID)
	if err != nil {
		return nil, err
	}
	if !c.IsProject {
		return nil, app_errors.NewFieldValidationError("project_id", "not_project", "finance.not_a_project")
	}
	return c, nil
}

func insufficientBalance() *app_errors.AppError {
	return app_errors.NewFieldValidationError("amount", "insufficient_balance", "finance.insufficient_balance")
}
