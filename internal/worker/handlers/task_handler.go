package worker_handler

import (
	"context"
	"fmt"

	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// DeadlineReminder erinnert die zugewiesene Person kurz vor Fristablauf.
// Geänderte Fristen, Neuzuweisungen und abgeschlossene Tasks machen die Erinnerung hinfällig.
func (wh *WorkerHandler) DeadlineReminder() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.CaseTaskDeadlineReminderPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return asynq.SkipRetry
		}

		task, err := wh.tasks.FindByID(ctx, p.OrgID, p.TaskID)
		if err != nil {
			if err.Type == app_errors.ErrNotFound {
				return nil
			}
			return err
		}

		if !task.Status.IsActive() || task.AssignedTo == nil || task.Deadline == nil || !task.Deadline.Equal(p.Deadline) {
			return nil
		}
		// idempotent
		if task.LastReminderAt != nil {
			return nil
		}

		if _, err := wh.notifier.Emit(ctx, p.OrgID, emitter.Notification{
			UserID:     *task.AssignedTo,
			Title:      "Task due soon",
			Message:    fmt.Sprintf("%s task is due %s", task.Type, task.Deadline.UTC().Format("02 Jan 2006 15:04 MST")),
			EntityType: entity.EntityTask,
			EntityID:   task.ID,
			Type:       entity.NotificationWarning,
		}); err != nil {
			return err
		}

		if err := wh.tasks.BatchMarkReminded(ctx, nil, []string{task.ID}, wh.now()); err != nil {
			log.Error().Err(err.Err).Str("task_id", task.ID).Msg("Worker handler: Error occured when marking task reminded.")
			return err
		}
		return nil
	}
}

// OverdueSweep mahnt alle überfälligen Tasks an und merkt sich den Zeitpunkt im Batch.
// Tasks, deren Benachrichtigung scheitert, bleiben unmarkiert und kommen beim nächsten Lauf wieder.
func (wh *WorkerHandler) OverdueSweep() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		now := wh.now()
		overdue, err := wh.tasks.ListOverdue(ctx, now, overdueRemindEvery)
		if err != nil {
			log.Error().Err(err.Err).Msg("Worker handler: Error occured when listing overdue tasks")
			return err
		}
		if len(overdue) == 0 {
			return nil
		}

		reminded := make([]string, 0, len(overdue))
		for _, o := range overdue {
			if _, err := wh.notifier.Emit(ctx, o.OrgID, emitter.Notification{
				UserID:     o.AssignedTo,
				Title:      "Task overdue",
				Message:    fmt.Sprintf("%s for %s was due %s", o.Type, o.ClientName, o.Deadline.UTC().Format("02 Jan 2006")),
				EntityType: entity.EntityTask,
				EntityID:   o.ID,
				Type:       entity.NotificationError,
			}); err != nil {
				log.Warn().Err(err.Err).Str("task_id", o.ID).Msg("Worker handler: Overdue notification failed")
				continue
			}
			reminded = append(reminded, o.ID)
		}
		if len(reminded) == 0 {
			return nil
		}

		tx, txErr := wh.txManager.Begin(ctx)
		if txErr != nil {
			log.Error().Err(txErr.Err).Msg("Worker handler: Failed to open db transaction")
			return txErr
		}
		defer tx.Rollback(ctx)

		if err := wh.tasks.BatchMarkReminded(ctx, tx, reminded, now); err != nil {
			log.Error().Err(err.Err).Msg("Worker handler: Error occured when update tasks")
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			log.Error().Err(err.Err).Msg("Worker handler: Error when initiating commit transaction")
			return err
		}

		log.Info().Int("overdue", len(overdue)).Int("reminded", len(reminded)).Msg("Worker handler: overdue sweep done")
		return nil
	}
}
