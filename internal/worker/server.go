package worker

import (
	"context"
	"fmt"

	"github.com/Xenn-00/fitout-meister/internal/config"
	worker_handler "github.com/Xenn-00/fitout-meister/internal/worker/handlers"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RunWorker startet Server und Scheduler und blockiert bis ctx beendet ist.
func RunWorker(ctx context.Context, redis *redis.Client, handler *worker_handler.WorkerHandler, cfg *config.AppConfig) error {
	srv := NewWorkerServer(redis, cfg.WORKER.Concurrency)
	scheduler := NewScheduler(redis)

	mux := asynq.NewServeMux()
	RegisterWorkerHandlers(mux, handler)

	if err := RegisterCronJobs(scheduler, cfg.WORKER.OverdueSweep); err != nil {
		return fmt.Errorf("failed to register scheduler: %w", err)
	}

	errChan := make(chan error, 2)

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Error().Err(err).Msg("scheduler error")
			errChan <- err
		}
	}()

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Error().Err(err).Msg("worker server error")
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		scheduler.Shutdown()
		srv.Shutdown()
		return err
	}

	log.Info().Msg("shutting down worker server...")
	scheduler.Shutdown()
	srv.Shutdown()

	return nil
}
