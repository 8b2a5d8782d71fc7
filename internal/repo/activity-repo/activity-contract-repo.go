package activity_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type ActivityRepoContract interface {
	Append(ctx context.Context, a *entity.CaseActivityEntity) *app_errors.AppError
	ListByCase(ctx context.Context, caseID string, limit, offset int) ([]entity.CaseActivityEntity, *app_errors.AppError)
}
