package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RequestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	requestIDPrefix = "FM-"
)

// Fremde IDs landen in Logs und Antworten, daher nur kurze, harmlose Werte übernehmen.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9_\-]{8,64}$`)

// RequestIDMiddleware übernimmt eine gültige X-Request-ID des Aufrufers oder vergibt eine neue "FM-..."-ID.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(requestIDHeader)
		if !validRequestID.MatchString(requestID) {
			id, err := gonanoid.New()
			if err != nil {
				return err
			}
			requestID = requestIDPrefix + id
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(requestIDHeader, requestID)

		return c.Next()
	}
}
