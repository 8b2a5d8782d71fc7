package approval_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type ApprovalRepoContract interface {
	Create(ctx context.Context, req *entity.ApprovalRequestEntity) *app_errors.AppError
	FindByID(ctx context.Context, orgID, id string) (*entity.ApprovalRequestEntity, *app_errors.AppError)
	List(ctx context.Context, orgID string, filter entity.ApprovalFilter) ([]entity.ApprovalRequestEntity, *app_errors.AppError)
	Decide(ctx context.Context, orgID, id string, expected entity.ApprovalStatus, decision entity.ApprovalDecision) (*entity.ApprovalRequestEntity, *app_errors.AppError)
}
