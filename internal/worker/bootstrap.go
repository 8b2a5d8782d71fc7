package worker

import (
	"fmt"

	worker_handler "github.com/Xenn-00/fitout-meister/internal/worker/handlers"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func RegisterWorkerHandlers(mux *asynq.ServeMux, h *worker_handler.WorkerHandler) {
	mux.HandleFunc(worker_task.TaskSendNotificationEmail, h.SendNotificationEmail())
	mux.HandleFunc(worker_task.TaskCaseTaskDeadlineReminder, h.DeadlineReminder())
	mux.HandleFunc(worker_task.TaskOverdueCaseTasks, h.OverdueSweep())
}

// RegisterCronJobs plant die periodischen Jobs. overdueSpec kommt aus WORKER.OverdueSweep.
func RegisterCronJobs(s *asynq.Scheduler, overdueSpec string) error {
	jobs := []struct {
		spec  string
		task  *asynq.Task
		queue string
		desc  string
	}{
		{
			spec:  overdueSpec,
			task:  asynq.NewTask(worker_task.TaskOverdueCaseTasks, nil),
			queue: "low",
			desc:  "send case task overdue reminders",
		},
	}

	for _, job := range jobs {
		if _, err := s.Register(job.spec, job.task, asynq.Queue(job.queue)); err != nil {
			return fmt.Errorf("register %s failed: %w", job.desc, err)
		}
		log.Info().Str("spec", job.spec).Msgf("scheduled: %s", job.desc)
	}

	return nil
}
