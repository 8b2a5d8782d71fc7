package worker

import (
	"testing"

	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestAsynqRedisOpt_CopiesClientOptions(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "cache:6380", Password: "geheim", DB: 2})
	defer rdb.Close()

	opt := asynqRedisOpt(rdb)

	assert.Equal(t, "cache:6380", opt.Addr)
	assert.Equal(t, "geheim", opt.Password)
	assert.Equal(t, 2, opt.DB)
}

func TestRegisterCronJobs_RejectsInvalidSpec(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()

	s := NewScheduler(rdb)
	err := RegisterCronJobs(s, "not a cron")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "overdue")
}

func TestTaskNames_QueuePrefixes(t *testing.T) {
	// Sweep und Erinnerung laufen auf der low-Queue, Mails auf email
	assert.Contains(t, worker_task.TaskOverdueCaseTasks, "low:")
	assert.Contains(t, worker_task.TaskCaseTaskDeadlineReminder, "low:")
	assert.Contains(t, worker_task.TaskSendNotificationEmail, "email:")
	assert.NotNil(t, asynq.NewTask(worker_task.TaskOverdueCaseTasks, nil))
}
