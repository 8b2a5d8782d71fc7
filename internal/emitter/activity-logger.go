package emitter

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	activity_repo "github.com/Xenn-00/fitout-meister/internal/repo/activity-repo"
	"github.com/google/uuid"
)

type Activity struct {
	CaseID     string
	Action     entity.ActivityAction
	FromStatus *entity.CaseStatus
	ToStatus   *entity.CaseStatus
	Message    string
}

type ActivityLogger interface {
	Log(ctx context.Context, actor entity.Session, a Activity) *app_errors.AppError
}

type activityLogger struct {
	repo activity_repo.ActivityRepoContract
	now  func() time.Time
}

func NewActivityLogger(repo activity_repo.ActivityRepoContract) ActivityLogger {
	return &activityLogger{repo: repo, now: time.Now}
}

func (l *activityLogger) Log(ctx context.Context, actor entity.Session, a Activity) *app_errors.AppError {
	if a.CaseID == "" {
		return app_errors.NewFieldValidationError("case_id", "required", "validation.required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return app_errors.NewInternalError(err)
	}

	return l.repo.Append(ctx, &entity.CaseActivityEntity{
		ID:         id.String(),
		CaseID:     a.CaseID,
		ActorID:    actor.UserID,
		ActorName:  actor.Name,
		Action:     a.Action,
		FromStatus: a.FromStatus,
		ToStatus:   a.ToStatus,
		Message:    a.Message,
		CreatedAt:  l.now(),
	})
}
