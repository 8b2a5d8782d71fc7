package main

// Package main ist der Einstiegspunkt der HTTP-API von "fitout-meister".
// Lädt Konfiguration, öffnet Postgres und Redis, verdrahtet Feed und Task-Queue
// und startet die Fiber-App mit Middleware und Routern.

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/config"
	"github.com/Xenn-00/fitout-meister/internal/db"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/Xenn-00/fitout-meister/internal/middleware"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	"github.com/Xenn-00/fitout-meister/internal/routers"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	i18nSvc := i18n.NewInitI18nService()
	cfg := config.LoadConfig()
	if cfg.APP.State == "prod" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	dbPool := db.ConnectPool(cfg.DATABASE.Postgres.DSN)
	redisPool, err := db.RedisPool(cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis-Pool konnte nicht initialisiert werden")
	}

	paseto, err := utils.NewPasetoMaker(cfg.APP_SECRET.Paseto.HexKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Paseto-Maker konnte nicht initialisiert werden")
	}

	taskQueue := queue.NewTaskQueue(redisPool)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandlerMiddleware(i18nSvc),
		// SSE-Verbindungen bleiben offen
		IdleTimeout: 2 * time.Minute,
	})
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.AcceptLanguageMiddleware())
	app.Use(middleware.LoggerMiddleware())

	routers.SetupRoutes(app, routers.Deps{
		DB:        dbPool,
		Redis:     redisPool,
		I18n:      i18nSvc,
		Paseto:    paseto,
		Config:    cfg,
		Feed:      feed.NewRedisFeed(redisPool),
		TaskQueue: taskQueue,
	})

	go func() {
		log.Info().Msgf("Starte %s auf Port %s", cfg.APP.Name, cfg.APP.Port)
		if err := app.Listen(fmt.Sprintf(":%s", cfg.APP.Port)); err != nil {
			if err == http.ErrServerClosed {
				log.Info().Msg("Server ordnungsgemäß herunterfahren.")
			} else {
				log.Fatal().Err(err).Msgf("Der Server konnte nicht gestartet werden, %v", err)
			}
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	log.Warn().Msg("Shutdown-Signal empfangen... Vorbereitung zum Herunterfahren.")

	// Erst keine neuen Requests mehr, dann Ressourcen schließen
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msgf("Beim Herunterfahren ist ein Fehler aufgtreten: %v", err)
	}

	if err := taskQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Task-Queue konnte nicht geschlossen werden.")
	}

	if redisPool != nil {
		redisPool.Close()
		log.Info().Msg("Redis-Pool erfolgreich geschlossen.")
	}

	if dbPool != nil {
		dbPool.Close()
		log.Info().Msg("DB-Pool erfolgreich geschlossen.")
	}
	log.Info().Msg("Server ordnungsgemäß herunterfahren.")
}
