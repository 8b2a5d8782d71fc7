package middleware

import (
	"errors"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Health-Checks der Orchestrierung nicht mitschreiben
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/livez":   {},
	"/readyz":  {},
}

// LoggerMiddleware schreibt eine Zeile pro Anfrage. Die Stufe richtet sich nach dem Status.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, quiet := quietPaths[c.Path()]; quiet {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		// Der ErrorHandler läuft erst nach uns, also den Status selbst ableiten
		status := c.Response().StatusCode()
		var appErr *app_errors.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.Code
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case err != nil:
			status = fiber.StatusInternalServerError
		}

		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		reqID, _ := c.Locals(RequestIDKey).(string)
		event = event.
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start))
		if session, ok := c.Locals(SessionKey).(entity.Session); ok {
			event = event.Str("user_id", session.UserID).Str("org_id", session.OrgID)
		}
		event.Msg("request")

		return err
	}
}
