package middleware

import (
	"net/http/httptest"
	"testing"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoI18n struct{}

func (echoI18n) T(lang string, key string, params map[string]any) string {
	return lang + ":" + key
}

type renderedError struct {
	Status string `json:"status"`
	Error  struct {
		Code      int    `json:"code"`
		Type      string `json:"type"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func newErrorApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(echoI18n{})})
	app.Use(RequestIDMiddleware())
	app.Use(AcceptLanguageMiddleware())
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return app_errors.NewConflictError("conflict.case_status_changed", nil)
	})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return app_errors.NewValidationError([]app_errors.FieldError{{Field: "budget", Reason: "gt", MessageKey: "validation.gt"}})
	})
	return app
}

func doError(t *testing.T, app *fiber.App, path, lang string) (int, renderedError) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, lang)
	req.Header.Set("X-Request-ID", "client-req-0001")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body renderedError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler_AppError(t *testing.T) {
	status, body := doError(t, newErrorApp(), "/conflict", "de-DE")

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, app_errors.ErrConflict, body.Error.Type)
	assert.Equal(t, "de:conflict.case_status_changed", body.Error.Message)
	assert.Equal(t, "client-req-0001", body.Error.RequestID)
}

func TestErrorHandler_FieldDetails(t *testing.T) {
	status, body := doError(t, newErrorApp(), "/validation", "en")

	assert.Equal(t, fiber.StatusBadRequest, status)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "budget", body.Error.Details[0].Field)
	assert.Equal(t, "en:validation.gt", body.Error.Details[0].Message)
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	status, body := doError(t, newErrorApp(), "/nope", "en")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, app_errors.ErrNotFound, body.Error.Type)
	assert.Equal(t, "en:route_not_found", body.Error.Message)
}
