package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/config"
	"github.com/Xenn-00/fitout-meister/internal/db"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/mail"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	"github.com/Xenn-00/fitout-meister/internal/worker"
	worker_handler "github.com/Xenn-00/fitout-meister/internal/worker/handlers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	cfg := config.LoadConfig()

	dbPool := db.ConnectPool(cfg.DATABASE.Postgres.DSN)
	redisPool, err := db.RedisPool(cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis-Pool konnte nicht initialisiert werden")
	}

	// Erinnerungen erzeugen selbst Benachrichtigungen, die wieder Mails einreihen
	taskQueue := queue.NewTaskQueue(redisPool)
	handler := worker_handler.NewWorkerHandler(dbPool, feed.NewRedisFeed(redisPool), taskQueue, mail.NewMailer(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting worker server...")
		if err := worker.RunWorker(ctx, redisPool, handler, cfg); err != nil {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
		// RunWorker braucht einen Moment für Scheduler und Server
		time.Sleep(time.Second)
		taskQueue.Close()
		dbPool.Close()
		redisPool.Close()
		log.Info().Msg("worker shutdown complete")
	case err := <-errChan:
		log.Fatal().Err(err).Msg("worker crashed")
	}
}
