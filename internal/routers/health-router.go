package routers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthRouter registriert Health- und Readiness-Endpoints.
//   - GET /healthz: Prozess lebt, JSON (HTTP 200).
//   - GET /livez:  Liveness als Text (HTTP 200).
//   - GET /readyz: prüft Redis (Cache, Feed, Queue) und Postgres, sonst 503 mit der ersten fehlenden Abhängigkeit.
func HealthRouter(app fiber.Router, db *pgxpool.Pool, redis *redis.Client) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "Health-OK",
			"message": "Service lebt.",
		})
	})

	app.Get("/livez", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Lebt.")
	})

	checks := []struct {
		name string
		ping func(ctx context.Context) error
	}{
		{name: "Redis", ping: func(ctx context.Context) error { return redis.Ping(ctx).Err() }},
		{name: "Datenbank", ping: db.Ping},
	}

	app.Get("/readyz", func(c *fiber.Ctx) error {
		for _, check := range checks {
			if err := check.ping(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "Fehlversuch",
					"error":  check.name + " ist nicht bereit.",
				})
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "Bereit",
			"message": "Datenbank, Redis und App sind einsatzbereit.",
		})
	})
}
