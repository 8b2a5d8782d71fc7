package routers

import (
	approval_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/approval"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	"github.com/Xenn-00/fitout-meister/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func ApprovalRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/approvals", auth)
	approvalHandler := approval_handlers.NewApprovalHandler(deps.DB, deps.Redis, deps.Feed, deps.TaskQueue, deps.I18n)
	reviewers := middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager)

	r.Post("/", approvalHandler.Submit)
	r.Get("/", approvalHandler.List)
	r.Get("/:approval_id", approvalHandler.Get)
	r.Get("/:approval_id/suggestions", reviewers, approvalHandler.SuggestAssignees)
	r.Post("/:approval_id/approve", reviewers, approvalHandler.Approve)
	r.Post("/:approval_id/reject", reviewers, approvalHandler.Reject)
	r.Post("/:approval_id/edit-review", reviewers, approvalHandler.EditReview)
}
