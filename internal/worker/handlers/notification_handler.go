package worker_handler

import (
	"context"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// SendNotificationEmail verschickt eine gespeicherte Benachrichtigung per E-Mail,
// sofern der Empfänger aktiv ist und E-Mails nicht abbestellt hat.
func (wh *WorkerHandler) SendNotificationEmail() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.SendNotificationEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return asynq.SkipRetry
		}

		n, err := wh.notifications.FindByID(ctx, p.NotificationID)
		if err != nil {
			if err.Type == app_errors.ErrNotFound {
				return nil
			}
			return err
		}

		user, err := wh.users.FindByUserID(ctx, p.UserID)
		if err != nil {
			if err.Type == app_errors.ErrNotFound {
				return nil
			}
			return err
		}

		if !user.IsActive || !user.EmailNotifications || user.Email == "" {
			log.Debug().Str("user_id", user.ID).Msg("Worker handler: E-Mail-Benachrichtigung übersprungen")
			return nil
		}
		// ein bereits gelesener Eintrag braucht keine E-Mail mehr
		if n.IsRead {
			return nil
		}

		return wh.mailer.SendNotificationEmail(ctx, user.Email, user.Name, n)
	}
}
