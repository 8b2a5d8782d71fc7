package task_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type TaskRepoContract interface {
	Create(ctx context.Context, t tx.Tx, task *entity.CaseTaskEntity) *app_errors.AppError
	FindByID(ctx context.Context, orgID, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError)
	HasActiveOfType(ctx context.Context, caseID string, taskType entity.TaskType) (bool, *app_errors.AppError)
	List(ctx context.Context, orgID string, filter entity.TaskFilter) ([]entity.CaseTaskEntity, *app_errors.AppError)
	UpdateStatus(ctx context.Context, t tx.Tx, taskID string, from, to entity.TaskStatus, at time.Time) (bool, *app_errors.AppError)
	Reassign(ctx context.Context, taskID, assigneeID, assignedBy string, deadline *time.Time) *app_errors.AppError
	ListOverdue(ctx context.Context, now time.Time, remindEvery time.Duration) ([]entity.OverdueTask, *app_errors.AppError)
	BatchMarkReminded(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError
}
