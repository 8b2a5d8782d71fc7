package notification_handlers

import (
	notification_dto "github.com/Xenn-00/fitout-meister/internal/dtos/notification-dto"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	notification_case "github.com/Xenn-00/fitout-meister/internal/use-cases/notification-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationHandler struct {
	validator *validator.Validate
	service   notification_case.NotificationServiceContract
	i18n      internal_i18n.Service
}

func NewNotificationHandler(db *pgxpool.Pool, publisher feed.Publisher, i18n *internal_i18n.I18nService) *NotificationHandler {
	return &NotificationHandler{
		validator: handlers.NewValidator(),
		service:   notification_case.NewNotificationService(db, publisher),
		i18n:      i18n,
	}
}

func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var filter notification_dto.NotificationListFilter
	if err := handlers.ParseQuery(c, h.validator, &filter); err != nil {
		return err
	}

	resp, err := h.service.ListMine(c.Context(), session, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_notifications", resp)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param notification_dto.ParamNotificationID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Context(), session, param.ID); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_mark_read", "Ok")
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	resp, err := h.service.MarkAllRead(c.Context(), session)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_mark_read", resp)
}
