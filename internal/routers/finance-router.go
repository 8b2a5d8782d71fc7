package routers

import (
	"github.com/Xenn-00/fitout-meister/internal/entity"
	finance_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/finance"
	"github.com/Xenn-00/fitout-meister/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func FinanceRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/finance", auth, middleware.RequireRoles(entity.RoleAdmin, entity.RoleAccountsTeam, entity.RoleManager))
	financeHandler := finance_handlers.NewFinanceHandler(deps.DB, deps.Feed, deps.Config.FINANCE.StrictBalance, deps.I18n)

	r.Post("/transactions", financeHandler.AddTransaction)
	r.Get("/cost-centers", financeHandler.ListCostCenters)
	r.Get("/projects/:project_id/cost-center", financeHandler.GetCostCenter)
	r.Get("/projects/:project_id/transactions", financeHandler.ListTransactions)
}
