package routers

import (
	stream_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/stream"
	"github.com/gofiber/fiber/v2"
)

// StreamRouter: ein Abo pro Verbindung, jede Änderung löst einen vollständigen Snapshot aus.
func StreamRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/stream", auth)
	streamHandler := stream_handlers.NewStreamHandler(deps.DB, deps.Redis, deps.Feed, deps.TaskQueue, deps.Config.FINANCE.StrictBalance)
	r.Get("/:collection", streamHandler.Stream)
}
