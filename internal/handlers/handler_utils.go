package handlers

import (
	"strings"
	"unicode"

	"github.com/Xenn-00/fitout-meister/internal/dtos"
	approval_dto "github.com/Xenn-00/fitout-meister/internal/dtos/approval-dto"
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	finance_dto "github.com/Xenn-00/fitout-meister/internal/dtos/finance-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/Xenn-00/fitout-meister/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateResponse erstellt eine standardisierte WebResponse.
func CreateResponse[T any](message string, data T, requestID string, details ...any) dtos.WebResponse[T] {
	return dtos.WebResponse[T]{
		Message:   message,
		Data:      data,
		RequestID: requestID,
		Details:   details,
	}
}

// GetSession liest die von der AuthMiddleware abgelegte Sitzung.
func GetSession(c *fiber.Ctx) (entity.Session, *app_errors.AppError) {
	session, ok := c.Locals(middleware.SessionKey).(entity.Session)
	if !ok || session.UserID == "" {
		return entity.Session{}, app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}
	return session, nil
}

func GetRequestID(c *fiber.Ctx) string {
	reqID, ok := c.Locals(middleware.RequestIDKey).(string)
	if !ok {
		reqID = "unknown"
	}
	return reqID
}

func GetLang(c *fiber.Ctx) string {
	lang, _ := c.Locals("lang").(string)
	return lang
}

// ParseParams parst und validiert Pfadparameter in dest.
func ParseParams(c *fiber.Ctx, v *validator.Validate, dest any) *app_errors.AppError {
	if err := c.ParamsParser(dest); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}
	if err := v.Struct(dest); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

// ParseBody parst und validiert den JSON-Body in dest.
func ParseBody(c *fiber.Ctx, v *validator.Validate, dest any) *app_errors.AppError {
	if len(c.Body()) == 0 {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}
	if err := c.BodyParser(dest); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	if err := v.Struct(dest); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

func ParseQuery(c *fiber.Ctx, v *validator.Validate, dest any) *app_errors.AppError {
	if err := c.QueryParser(dest); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if err := v.Struct(dest); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

// Respond schreibt eine WebResponse mit übersetzter Nachricht.
func Respond[T any](c *fiber.Ctx, i18n internal_i18n.Service, status int, messageKey string, data T) error {
	webResp := CreateResponse(i18n.T(GetLang(c), messageKey, nil), data, GetRequestID(c))
	if err := c.Status(status).JSON(webResp); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", err)
	}
	return nil
}

// NewValidator registriert die domänenspezifischen Tags einmal für alle Handler.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("caseStatus", case_dto.IsValidCaseStatus)
	validate.RegisterValidation("casePriority", case_dto.IsValidCasePriority)
	validate.RegisterValidation("userRole", case_dto.IsValidUserRole)
	validate.RegisterValidation("taskStatus", case_dto.IsValidTaskStatus)
	validate.RegisterValidation("requestType", approval_dto.IsValidRequestType)
	validate.RegisterValidation("txType", finance_dto.IsValidTransactionType)
	return validate
}

// RespondRouted schreibt das Ergebnis eines Routings. Teilfehler werden als 207 mit dem
// Ergebnis und den fehlgeschlagenen Schritten beantwortet, alle anderen Fehler gehen an den ErrorHandler.
func RespondRouted[T any](c *fiber.Ctx, i18n internal_i18n.Service, messageKey string, data T, err *app_errors.AppError) error {
	if err == nil {
		return Respond(c, i18n, fiber.StatusOK, messageKey, data)
	}
	if err.Type != app_errors.ErrPartial {
		return err
	}

	lang := GetLang(c)
	details := make([]any, 0, len(err.Details))
	for _, d := range err.Details {
		details = append(details, dtos.StepFailure{
			Step:    d.Field,
			Message: i18n.T(lang, d.MessageKey, d.Params),
		})
	}
	webResp := CreateResponse(i18n.T(lang, err.MessageKey, nil), data, GetRequestID(c), details...)
	if werr := c.Status(fiber.StatusMultiStatus).JSON(webResp); werr != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", werr)
	}
	return nil
}

// NormalizeEnum bringt Werte wie "site visit" in die gespeicherte Form SITE_VISIT.
func NormalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

// NormalizeStatusCase bringt Aufgabenstatus wie "pending" in die Form "Pending".
func NormalizeStatusCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")

	words := strings.Split(s, "_")
	for i, word := range words {
		if len(word) > 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}

	return strings.Join(words, "_")
}
