package routers

import (
	user_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/user"
	"github.com/gofiber/fiber/v2"
)

func UserRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/user", auth)
	userHandler := user_handlers.NewUserHandler(deps.DB, deps.Redis, deps.I18n)
	r.Get("/me", userHandler.FetchUserSelfProfile)
	r.Patch("/me", userHandler.UpdateSelfProfile)
	r.Get("/directory", userHandler.Directory)
	r.Get("/:id", userHandler.FetchUserProfile)
}
