package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/config"
	"github.com/Xenn-00/fitout-meister/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	direction := flag.String("direction", "up", "up oder down")
	steps := flag.Int("steps", 0, "Anzahl Schritte, 0 heißt alle")
	flag.Parse()

	cfg := config.LoadConfig()

	conn, err := sql.Open("pgx", cfg.DATABASE.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Datenbankverbindung für Migrationen fehlgeschlagen")
	}
	defer conn.Close()
	if err := conn.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Datenbank nicht erreichbar")
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres-Treiber für Migrationen fehlgeschlagen")
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("Migrationsquelle konnte nicht gelesen werden")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("Migrate-Instanz konnte nicht erstellt werden")
	}

	switch {
	case *steps != 0 && *direction == "down":
		err = m.Steps(-*steps)
	case *steps != 0:
		err = m.Steps(*steps)
	case *direction == "down":
		err = m.Down()
	default:
		err = m.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("Keine neuen Migrationen.")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", *direction).Msg("Migration fehlgeschlagen")
	}

	version, dirty, _ := m.Version()
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrationen angewendet.")
}
