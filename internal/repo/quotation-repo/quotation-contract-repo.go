package quotation_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type QuotationRepoContract interface {
	NextVersion(ctx context.Context, t tx.Tx, caseID string) (int, *app_errors.AppError)
	CreateQuotation(ctx context.Context, t tx.Tx, q *entity.CaseQuotationEntity) *app_errors.AppError
	FindQuotation(ctx context.Context, orgID, id string) (*entity.CaseQuotationEntity, *app_errors.AppError)
	ListQuotations(ctx context.Context, orgID, caseID string) ([]entity.CaseQuotationEntity, *app_errors.AppError)
	UpdateAudit(ctx context.Context, id string, from, to entity.AuditStatus, auditedBy string, prCode *string) (bool, *app_errors.AppError)
	UpdateDecision(ctx context.Context, id string, to entity.QuotationStatus, decidedBy string) (bool, *app_errors.AppError)
	CreateBOQ(ctx context.Context, boq *entity.CaseBOQEntity) *app_errors.AppError
	ListBOQs(ctx context.Context, orgID, caseID string) ([]entity.CaseBOQEntity, *app_errors.AppError)
}
