package worker_handler

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/mail"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	notification_repo "github.com/Xenn-00/fitout-meister/internal/repo/notification-repo"
	task_repo "github.com/Xenn-00/fitout-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	"github.com/jackc/pgx/v5/pgxpool"
)

// overdueRemindEvery: überfällige Tasks werden höchstens einmal pro Tag erneut angemahnt.
const overdueRemindEvery = 24 * time.Hour

type taskStore interface {
	FindByID(ctx context.Context, orgID, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError)
	ListOverdue(ctx context.Context, now time.Time, remindEvery time.Duration) ([]entity.OverdueTask, *app_errors.AppError)
	BatchMarkReminded(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError
}

type userFinder interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError)
}

type notificationFinder interface {
	FindByID(ctx context.Context, id string) (*entity.NotificationEntity, *app_errors.AppError)
}

type WorkerHandler struct {
	tasks         taskStore
	users         userFinder
	notifications notificationFinder
	notifier      emitter.NotificationEmitter
	txManager     tx.TxManager
	mailer        mail.Mailer
	now           func() time.Time
}

func NewWorkerHandler(db *pgxpool.Pool, publisher feed.Publisher, taskQueue queue.TaskQueueClient, mailer mail.Mailer) *WorkerHandler {
	notifications := notification_repo.NewNotificationRepo(db)
	return &WorkerHandler{
		tasks:         task_repo.NewTaskRepo(db),
		users:         user_repo.NewUserRepo(db),
		notifications: notifications,
		notifier:      emitter.NewNotificationEmitter(notifications, publisher, taskQueue),
		txManager:     tx.NewPgxTxManager(db),
		mailer:        mailer,
		now:           time.Now,
	}
}
