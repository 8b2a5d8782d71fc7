package approval_case

import (
	"context"

	approval_dto "github.com/Xenn-00/fitout-meister/internal/dtos/approval-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type ApprovalServiceContract interface {
	Submit(ctx context.Context, session entity.Session, req *approval_dto.SubmitApprovalRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError)
	Approve(ctx context.Context, session entity.Session, approvalID string, req *approval_dto.ApproveRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError)
	Reject(ctx context.Context, session entity.Session, approvalID string, req *approval_dto.RejectRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError)
	EditReview(ctx context.Context, session entity.Session, approvalID string, req *approval_dto.EditReviewRequest) (*entity.ApprovalRequestEntity, *app_errors.AppError)
	SuggestAssignees(ctx context.Context, session entity.Session, approvalID string) (*approval_dto.SuggestAssigneesResponse, *app_errors.AppError)
	List(ctx context.Context, session entity.Session, filter approval_dto.ApprovalListFilter) ([]entity.ApprovalRequestEntity, *app_errors.AppError)
	Get(ctx context.Context, session entity.Session, approvalID string) (*entity.ApprovalRequestEntity, *app_errors.AppError)
}
