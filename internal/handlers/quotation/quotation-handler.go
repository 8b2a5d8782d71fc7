package quotation_handlers

import (
	"strings"

	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	quotation_dto "github.com/Xenn-00/fitout-meister/internal/dtos/quotation-dto"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	quotation_case "github.com/Xenn-00/fitout-meister/internal/use-cases/quotation-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type QuotationHandler struct {
	validator *validator.Validate
	service   quotation_case.QuotationServiceContract
	i18n      internal_i18n.Service
}

func NewQuotationHandler(db *pgxpool.Pool, publisher feed.Publisher, taskQueue queue.TaskQueueClient, taxRate decimal.Decimal, i18n *internal_i18n.I18nService) *QuotationHandler {
	return &QuotationHandler{
		validator: handlers.NewValidator(),
		service:   quotation_case.NewQuotationService(db, publisher, taskQueue, taxRate),
		i18n:      i18n,
	}
}

func (h *QuotationHandler) SubmitBOQ(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req quotation_dto.SubmitBOQRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.SubmitBOQ(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_submit_boq", resp)
}

func (h *QuotationHandler) ListBOQs(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.ListBOQs(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_boqs", resp)
}

func (h *QuotationHandler) SubmitQuotation(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req quotation_dto.SubmitQuotationRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.SubmitQuotation(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_submit_quotation", resp)
}

func (h *QuotationHandler) ListQuotations(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.ListQuotations(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_quotations", resp)
}

func (h *QuotationHandler) GetQuotation(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param quotation_dto.ParamQuotationID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.GetQuotation(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_quotation", resp)
}

// AuditQuotation: eine freigegebene Prüfung legt eine Ausschreibungsaufgabe an, die teilweise scheitern kann.
func (h *QuotationHandler) AuditQuotation(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param quotation_dto.ParamQuotationID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req quotation_dto.AuditQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.Decision = strings.ToLower(strings.TrimSpace(req.Decision))
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.AuditQuotation(c.Context(), session, param.ID, &req)
	if resp == nil && err != nil {
		return err
	}

	return handlers.RespondRouted(c, h.i18n, "response.success_audit_quotation", resp, err)
}

func (h *QuotationHandler) DecideQuotation(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param quotation_dto.ParamQuotationID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req quotation_dto.DecideQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.Decision = handlers.NormalizeStatusCase(req.Decision)
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.DecideQuotation(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_decide_quotation", resp)
}

// ExternalQuotation liefert die kundentaugliche Sicht ohne interne Felder.
func (h *QuotationHandler) ExternalQuotation(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param quotation_dto.ParamQuotationID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.ExternalQuotation(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_quotation", resp)
}
