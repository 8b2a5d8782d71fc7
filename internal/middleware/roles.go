package middleware

import (
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles prüft die Rolle der Session gegen allowedRoles.
// Ohne Session 401, bei fehlender Berechtigung 403.
func RequireRoles(allowedRoles ...entity.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := c.Locals(SessionKey).(entity.Session)
		if !ok || session.Role == "" {
			return unauthorized(nil)
		}

		if session.HasRole(allowedRoles...) {
			return c.Next()
		}
		return app_errors.NewForbiddenError("forbidden")
	}
}
