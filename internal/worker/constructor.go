package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func NewWorkerServer(redis *redis.Client, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}
	return asynq.NewServer(
		asynqRedisOpt(redis),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"email":   6, // Benachrichtigungs-Mails zuerst
				"default": 3,
				"low":     1, // Erinnerungen und Sweeps
			},
			RetryDelayFunc: func(n int, err error, t *asynq.Task) time.Duration {
				return time.Duration(n) * time.Second
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("task", task.Type()).
					Bytes("payload", task.Payload()).
					Msg("task failed")
			}),
		},
	)
}

func NewScheduler(redis *redis.Client) *asynq.Scheduler {
	return asynq.NewScheduler(
		asynqRedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: time.Local,
			LogLevel: asynq.InfoLevel,
		},
	)
}

func asynqRedisOpt(redis *redis.Client) asynq.RedisClientOpt {
	opts := redis.Options()
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}
}
