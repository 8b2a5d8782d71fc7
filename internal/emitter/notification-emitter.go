package emitter

import (
	"context"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	notification_repo "github.com/Xenn-00/fitout-meister/internal/repo/notification-repo"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Notification struct {
	UserID     string
	Title      string
	Message    string
	EntityType string
	EntityID   string
	Type       entity.NotificationType
}

type NotificationEmitter interface {
	Emit(ctx context.Context, orgID string, n Notification) (*entity.NotificationEntity, *app_errors.AppError)
}

type notificationEmitter struct {
	repo      notification_repo.NotificationRepoContract
	publisher feed.Publisher
	queue     queue.TaskQueueClient
	now       func() time.Time
}

func NewNotificationEmitter(repo notification_repo.NotificationRepoContract, publisher feed.Publisher, queue queue.TaskQueueClient) NotificationEmitter {
	return &notificationEmitter{
		repo:      repo,
		publisher: publisher,
		queue:     queue,
		now:       time.Now,
	}
}

// Emit speichert die Benachrichtigung. Nur das Speichern kann fehlschlagen,
// Feed und E-Mail-Versand werden lediglich geloggt.
func (e *notificationEmitter) Emit(ctx context.Context, orgID string, n Notification) (*entity.NotificationEntity, *app_errors.AppError) {
	if n.UserID == "" {
		return nil, app_errors.NewFieldValidationError("user_id", "required", "validation.required")
	}
	if n.Type == "" {
		n.Type = entity.NotificationInfo
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, app_errors.NewInternalError(err)
	}

	record := &entity.NotificationEntity{
		ID:         id.String(),
		Title:      n.Title,
		Message:    n.Message,
		UserID:     n.UserID,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		Type:       n.Type,
		IsRead:     false,
		CreatedAt:  e.now(),
	}
	if appErr := e.repo.Create(ctx, record); appErr != nil {
		return nil, appErr
	}

	if err := e.publisher.Publish(ctx, orgID, feed.Notifications); err != nil {
		log.Warn().Err(err).Str("notification_id", record.ID).Msg("Notification-Feed konnte nicht benachrichtigt werden")
	}

	if err := e.queue.EnqueueSendNotificationEmail(&worker_task.SendNotificationEmailPayload{
		NotificationID: record.ID,
		UserID:         record.UserID,
	}); err != nil {
		log.Warn().Err(err).Str("notification_id", record.ID).Msg("E-Mail-Task konnte nicht eingereiht werden")
	}

	return record, nil
}
