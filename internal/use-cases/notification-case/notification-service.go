package notification_case

import (
	"context"

	notification_dto "github.com/Xenn-00/fitout-meister/internal/dtos/notification-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	notification_repo "github.com/Xenn-00/fitout-meister/internal/repo/notification-repo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const defaultNotificationLimit = 30

type NotificationService struct {
	repo      notification_repo.NotificationRepoContract
	publisher feed.Publisher
}

func NewNotificationService(db *pgxpool.Pool, publisher feed.Publisher) NotificationServiceContract {
	return &NotificationService{
		repo:      notification_repo.NewNotificationRepo(db),
		publisher: publisher,
	}
}

func (s *NotificationService) ListMine(ctx context.Context, session entity.Session, filter notification_dto.NotificationListFilter) ([]entity.NotificationEntity, *app_errors.AppError) {
	limit := defaultNotificationLimit
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	return s.repo.ListByUser(ctx, session.UserID, filter.Unread, limit, offset)
}

// MarkRead: fremde Benachrichtigungen verhalten sich wie nicht vorhandene.
func (s *NotificationService) MarkRead(ctx context.Context, session entity.Session, notificationID string) *app_errors.AppError {
	ok, err := s.repo.MarkRead(ctx, session.UserID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return app_errors.NewNotFoundError("notification_not_found")
	}
	s.publish(ctx, session.OrgID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, session entity.Session) (*notification_dto.MarkAllReadResponse, *app_errors.AppError) {
	updated, err := s.repo.MarkAllRead(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if updated > 0 {
		s.publish(ctx, session.OrgID)
	}
	return &notification_dto.MarkAllReadResponse{Updated: updated}, nil
}

func (s *NotificationService) publish(ctx context.Context, orgID string) {
	if err := s.publisher.Publish(ctx, orgID, feed.Notifications); err != nil {
		log.Warn().Err(err).Str("org_id", orgID).Msg("Benachrichtigungs-Feed konnte nicht benachrichtigt werden")
	}
}
