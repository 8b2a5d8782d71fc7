package case_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

// CaseRepoContract: Methoden mit tx.Tx laufen in der Transaktion, wenn eine übergeben wird, sonst direkt auf dem Pool.
type CaseRepoContract interface {
	Create(ctx context.Context, t tx.Tx, c *entity.CaseEntity) *app_errors.AppError
	CreateMany(ctx context.Context, t tx.Tx, cases []entity.CaseEntity) (int, *app_errors.AppError)
	FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError)
	List(ctx context.Context, orgID string, filter entity.CaseFilter) ([]entity.CaseEntity, *app_errors.AppError)
	TransitionStatus(ctx context.Context, t tx.Tx, orgID, caseID string, from, to entity.CaseStatus, isProject bool) (bool, *app_errors.AppError)
	Update(ctx context.Context, orgID, caseID string, model entity.CaseUpdate) (*entity.CaseEntity, *app_errors.AppError)
	Delete(ctx context.Context, orgID, caseID string) *app_errors.AppError
}
