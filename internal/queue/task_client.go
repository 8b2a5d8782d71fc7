package queue

import (
	"time"

	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type TaskQueueClient interface {
	EnqueueSendNotificationEmail(payload *worker_task.SendNotificationEmailPayload) error
	EnqueueCaseTaskDeadlineReminder(payload *worker_task.CaseTaskDeadlineReminderPayload, remindAt time.Time) error
}

var _ TaskQueueClient = (*TaskQueue)(nil)

type TaskQueue struct {
	client *asynq.Client
}

func NewTaskQueue(redis *redis.Client) *TaskQueue {
	return &TaskQueue{
		client: asynq.NewClientFromRedisClient(redis),
	}
}

func (q *TaskQueue) EnqueueSendNotificationEmail(payload *worker_task.SendNotificationEmailPayload) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(worker_task.TaskSendNotificationEmail, p, asynq.Queue("email"), asynq.MaxRetry(5))

	info, err := q.client.Enqueue(task)
	if err != nil {
		return err
	}
	log.Debug().Str("task_id", info.ID).Str("notification_id", payload.NotificationID).Msg("Benachrichtigungs-E-Mail eingereiht")
	return nil
}

// EnqueueCaseTaskDeadlineReminder plant eine Erinnerung. Liegt remindAt in der Vergangenheit,
// läuft sie sofort. Die TaskID macht das Einreihen pro Task idempotent.
func (q *TaskQueue) EnqueueCaseTaskDeadlineReminder(payload *worker_task.CaseTaskDeadlineReminderPayload, remindAt time.Time) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(
		worker_task.TaskCaseTaskDeadlineReminder,
		p,
		asynq.Queue("low"),
		asynq.ProcessAt(remindAt),
		asynq.TaskID("deadline:"+payload.TaskID+":"+payload.Deadline.UTC().Format(time.RFC3339)),
		asynq.MaxRetry(3),
	)

	_, err = q.client.Enqueue(task)
	if err == asynq.ErrTaskIDConflict {
		return nil
	}
	return err
}

func (q *TaskQueue) Close() error {
	return q.client.Close()
}
