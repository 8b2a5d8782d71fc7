package user_handlers

import (
	user_dto "github.com/Xenn-00/fitout-meister/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	user_case "github.com/Xenn-00/fitout-meister/internal/use-cases/user-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type UserHandler struct {
	validator *validator.Validate
	service   user_case.UserServiceContract
	i18n      internal_i18n.Service
}

// Geschützt mit AuthMiddleware
func NewUserHandler(db *pgxpool.Pool, redis *redis.Client, i18n *internal_i18n.I18nService) *UserHandler {
	return &UserHandler{
		validator: handlers.NewValidator(),
		service:   user_case.NewUserService(db, redis),
		i18n:      i18n,
	}
}

func (h *UserHandler) FetchUserSelfProfile(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UserSelfProfile(c.Context(), session)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_self", resp)
}

func (h *UserHandler) FetchUserProfile(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	// Das gesuchte Benutzer-ID kommt aus dem Parameter
	var req user_dto.ParamGetUserByID
	if err := handlers.ParseParams(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.UserProfileById(c.Context(), session, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_fetch_user", resp)
}

func (h *UserHandler) UpdateSelfProfile(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var req user_dto.UpdateSelfProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}

	// Wenn kein Feld gesetzt ist, ablehnen
	if req.Name == nil && req.EmailNotifications == nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}

	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.UpdateSelfProfile(c.Context(), session, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_self", resp)
}

func (h *UserHandler) Directory(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var filter user_dto.DirectoryFilter
	if err := c.QueryParser(&filter); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if filter.Role != nil {
		r := handlers.NormalizeEnum(*filter.Role)
		filter.Role = &r
	}
	if err := h.validator.Struct(filter); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.Directory(c.Context(), session, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_directory", resp)
}
