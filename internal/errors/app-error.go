package app_errors

import "github.com/gofiber/fiber/v2"

// AppError repräsentiert einen Anwendungsfehler mit einem Code, einer Nachricht und optional Details.
type AppError struct {
	Code       int          // HTTP status code
	Type       string       // VALIDATION_ERROR, NOT_FOUND, usw
	MessageKey string       // i18n key
	Details    []FieldError // optional (validation, partial failures)
	Err        error        // original error (internal only)
}

const (
	ErrValidation   = "VALIDATION_ERROR"
	ErrInvalidBody  = "INVALID_BODY"
	ErrInvalidParam = "INVALID_PARAM"
	ErrInvalidQuery = "INVALID_QUERY"
	ErrUnauthorized = "UNAUTHORIZED"
	ErrForbidden    = "FORBIDDEN"
	ErrNotFound     = "NOT_FOUND"
	ErrConflict     = "CONFLICT"
	ErrInternal     = "INTERNAL_ERROR"
	ErrPartial      = "PARTIAL_FAILURE"
)

type FieldError struct {
	Field      string         `json:"field"`
	Reason     string         `json:"reason"`
	MessageKey string         `json:"message_key"`
	Params     map[string]any `json:"params,omitempty"`
}

func NewAppError(code int, errType string, messageKey string, err error) *AppError {
	return &AppError{
		Code:       code,
		Type:       errType,
		MessageKey: messageKey,
		Err:        err,
	}
}

func NewValidationError(details []FieldError) *AppError {
	return &AppError{
		Code:       fiber.StatusBadRequest,
		Type:       ErrValidation,
		MessageKey: "invalid_request",
		Details:    details,
	}
}

// NewFieldValidationError is a shortcut for a business rule violation on a single field.
func NewFieldValidationError(field, reason, messageKey string) *AppError {
	return &AppError{
		Code:       fiber.StatusBadRequest,
		Type:       ErrValidation,
		MessageKey: messageKey,
		Details: []FieldError{{
			Field:      field,
			Reason:     reason,
			MessageKey: messageKey,
		}},
	}
}

func NewInternalError(err error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, ErrInternal, "internal_error", err)
}

func NewForbiddenError(messageKey string) *AppError {
	return NewAppError(fiber.StatusForbidden, ErrForbidden, messageKey, nil)
}

func NewNotFoundError(messageKey string) *AppError {
	return NewAppError(fiber.StatusNotFound, ErrNotFound, messageKey, nil)
}

func NewConflictError(messageKey string, err error) *AppError {
	return NewAppError(fiber.StatusConflict, ErrConflict, messageKey, err)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.MessageKey
}

func (e *AppError) Unwrap() error {
	return e.Err
}
