package routers

import (
	notification_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/notification"
	"github.com/gofiber/fiber/v2"
)

func NotificationRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/notifications", auth)
	notificationHandler := notification_handlers.NewNotificationHandler(deps.DB, deps.Feed, deps.I18n)

	r.Get("/", notificationHandler.ListMine)
	r.Post("/read-all", notificationHandler.MarkAllRead)
	r.Post("/:notification_id/read", notificationHandler.MarkRead)
}
