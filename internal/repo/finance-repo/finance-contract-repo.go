package finance_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type FinanceRepoContract interface {
	// FindCostCenter liefert (nil, nil), wenn für das Projekt noch nichts gebucht wurde.
	FindCostCenter(ctx context.Context, t tx.Tx, projectID string) (*entity.CostCenterEntity, *app_errors.AppError)
	EnsureCostCenter(ctx context.Context, t tx.Tx, projectID string, now time.Time) *app_errors.AppError
	LockCostCenter(ctx context.Context, t tx.Tx, projectID string) (*entity.CostCenterEntity, *app_errors.AppError)
	UpdateCostCenter(ctx context.Context, t tx.Tx, cc *entity.CostCenterEntity) *app_errors.AppError
	InsertTransaction(ctx context.Context, t tx.Tx, txn *entity.TransactionEntity) *app_errors.AppError
	ListTransactions(ctx context.Context, projectID string, limit, offset int) ([]entity.TransactionEntity, *app_errors.AppError)
	ListCostCenters(ctx context.Context, orgID string) ([]entity.CostCenterEntity, *app_errors.AppError)
}
