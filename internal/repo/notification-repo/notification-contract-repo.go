package notification_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type NotificationRepoContract interface {
	Create(ctx context.Context, n *entity.NotificationEntity) *app_errors.AppError
	FindByID(ctx context.Context, id string) (*entity.NotificationEntity, *app_errors.AppError)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]entity.NotificationEntity, *app_errors.AppError)
	MarkRead(ctx context.Context, userID, id string) (bool, *app_errors.AppError)
	MarkAllRead(ctx context.Context, userID string) (int64, *app_errors.AppError)
}
