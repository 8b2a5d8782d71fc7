package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ConnectPool öffnet den Postgres-Pool und prüft die Verbindung. Ohne Datenbank startet weder API noch Worker.
func ConnectPool(dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Fehler beim Parsen der Datenbank-DSN")
	}

	cfg.MaxConns = 20
	cfg.MinConns = 5
	cfg.MaxConnIdleTime = time.Hour
	cfg.HealthCheckPeriod = 5 * time.Minute
	// SSE-Streams laden Snapshots parallel, lange Abfragen sollen den Pool nicht blockieren
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = "15000"
	cfg.ConnConfig.RuntimeParams["application_name"] = "fitout-meister"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Fehler beim Erstellen des Datenbank-Pools")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("host", cfg.ConnConfig.Host).Msg("Datenbank nicht erreichbar")
	}

	log.Info().Str("host", cfg.ConnConfig.Host).Str("database", cfg.ConnConfig.Database).Msg("Datenbank-Pool bereit")
	return pool
}
