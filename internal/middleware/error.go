package middleware

import (
	"errors"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type fieldErrorBody struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorBody struct {
	Code      int              `json:"code"`
	Type      string           `json:"type"`
	Message   string           `json:"message"`
	RequestID string           `json:"request_id,omitempty"`
	Details   []fieldErrorBody `json:"details,omitempty"`
}

// fromFiberError übersetzt Fehler, die Fiber selbst erzeugt (unbekannte Route, Methode, Body-Limit).
func fromFiberError(fe *fiber.Error) *app_errors.AppError {
	switch fe.Code {
	case fiber.StatusNotFound:
		return app_errors.NewAppError(fe.Code, app_errors.ErrNotFound, "route_not_found", nil)
	case fiber.StatusMethodNotAllowed:
		return app_errors.NewAppError(fe.Code, app_errors.ErrNotFound, "method_not_allowed", nil)
	case fiber.StatusRequestEntityTooLarge:
		return app_errors.NewAppError(fe.Code, app_errors.ErrInvalidBody, "request.too_large", nil)
	case fiber.StatusTooManyRequests:
		return app_errors.NewAppError(fe.Code, "TOO_MANY_REQUESTS", "too_many_request", nil)
	case fiber.StatusBadRequest:
		return app_errors.NewAppError(fe.Code, app_errors.ErrInvalidBody, "request.invalid_body", fe)
	default:
		return app_errors.NewAppError(fe.Code, app_errors.ErrInternal, "internal_error", fe)
	}
}

// ErrorHandlerMiddleware rendert jeden Fehler als {"status":"error","error":{...}} in der Sprache der Anfrage.
func ErrorHandlerMiddleware(i18nSvc internal_i18n.Service) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang, _ := c.Locals("lang").(string)
		if lang == "" {
			lang = "en"
		}
		reqID, _ := c.Locals(RequestIDKey).(string)

		var appErr *app_errors.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
		case errors.As(err, &fiberErr):
			appErr = fromFiberError(fiberErr)
		default:
			appErr = app_errors.NewInternalError(err)
		}

		body := errorBody{
			Code:      appErr.Code,
			Type:      appErr.Type,
			Message:   i18nSvc.T(lang, appErr.MessageKey, nil),
			RequestID: reqID,
		}
		for _, d := range appErr.Details {
			body.Details = append(body.Details, fieldErrorBody{
				Field:   d.Field,
				Reason:  d.Reason,
				Message: i18nSvc.T(lang, d.MessageKey, d.Params),
			})
		}

		if appErr.Err != nil && appErr.Code >= fiber.StatusInternalServerError {
			log.Error().Err(appErr.Err).Str("request_id", reqID).Str("type", appErr.Type).Msg("application error")
		} else if appErr.Err != nil {
			log.Debug().Err(appErr.Err).Str("request_id", reqID).Str("type", appErr.Type).Msg("client error")
		}

		return c.Status(appErr.Code).JSON(fiber.Map{
			"status": "error",
			"error":  body,
		})
	}
}
