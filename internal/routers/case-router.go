package routers

import (
	"time"

	case_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/case"
	quotation_handlers "github.com/Xenn-00/fitout-meister/internal/handlers/quotation"
	"github.com/gofiber/fiber/v2"
)

func CaseRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/cases", auth)
	caseHandler := case_handlers.NewCaseHandler(deps.DB, deps.Feed, deps.TaskQueue, deps.I18n)
	quotationHandler := quotation_handlers.NewQuotationHandler(deps.DB, deps.Feed, deps.TaskQueue, deps.Config.TaxRate(), deps.I18n)

	r.Post("/", caseHandler.CreateCase)
	r.Get("/", caseHandler.ListCases)
	r.Get("/export", caseHandler.ExportCSV)
	r.Post("/import", userLimiter(limiterStorage(deps.Redis), "import", 5, 10*time.Minute), caseHandler.ImportLeads)
	r.Get("/:case_id", caseHandler.GetCase)
	r.Patch("/:case_id", caseHandler.UpdateCase)
	r.Delete("/:case_id", caseHandler.DeleteCase)
	r.Post("/:case_id/transition", caseHandler.TransitionCase)
	r.Post("/:case_id/status", caseHandler.SetStatus)
	r.Get("/:case_id/activities", caseHandler.ListActivities)
	r.Get("/:case_id/tasks", caseHandler.ListCaseTasks)
	r.Post("/:case_id/boq", quotationHandler.SubmitBOQ)
	r.Get("/:case_id/boq", quotationHandler.ListBOQs)
	r.Post("/:case_id/quotations", quotationHandler.SubmitQuotation)
	r.Get("/:case_id/quotations", quotationHandler.ListQuotations)
}

func TaskRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/tasks", auth)
	caseHandler := case_handlers.NewCaseHandler(deps.DB, deps.Feed, deps.TaskQueue, deps.I18n)

	r.Get("/me", caseHandler.ListMyTasks)
	r.Post("/:task_id/start", caseHandler.StartTask)
	r.Post("/:task_id/complete", caseHandler.CompleteTask)
	r.Post("/:task_id/reassign", caseHandler.ReassignTask)
}

func QuotationRouter(api fiber.Router, deps Deps, auth fiber.Handler) {
	r := api.Group("/quotations", auth)
	quotationHandler := quotation_handlers.NewQuotationHandler(deps.DB, deps.Feed, deps.TaskQueue, deps.Config.TaxRate(), deps.I18n)

	r.Get("/:quotation_id", quotationHandler.GetQuotation)
	r.Get("/:quotation_id/external", quotationHandler.ExternalQuotation)
	r.Post("/:quotation_id/audit", quotationHandler.AuditQuotation)
	r.Post("/:quotation_id/decision", quotationHandler.DecideQuotation)
}
