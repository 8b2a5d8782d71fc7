package notification_case

import (
	"context"

	notification_dto "github.com/Xenn-00/fitout-meister/internal/dtos/notification-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type NotificationServiceContract interface {
	ListMine(ctx context.Context, session entity.Session, filter notification_dto.NotificationListFilter) ([]entity.NotificationEntity, *app_errors.AppError)
	MarkRead(ctx context.Context, session entity.Session, notificationID string) *app_errors.AppError
	MarkAllRead(ctx context.Context, session entity.Session) (*notification_dto.MarkAllReadResponse, *app_errors.AppError)
}
