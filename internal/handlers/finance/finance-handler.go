package finance_handlers

import (
	finance_dto "github.com/Xenn-00/fitout-meister/internal/dtos/finance-dto"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	finance_case "github.com/Xenn-00/fitout-meister/internal/use-cases/finance-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FinanceHandler struct {
	validator *validator.Validate
	service   finance_case.FinanceServiceContract
	i18n      internal_i18n.Service
}

func NewFinanceHandler(db *pgxpool.Pool, publisher feed.Publisher, strictBalance bool, i18n *internal_i18n.I18nService) *FinanceHandler {
	return &FinanceHandler{
		validator: handlers.NewValidator(),
		service:   finance_case.NewFinanceService(db, publisher, strictBalance),
		i18n:      i18n,
	}
}

func (h *FinanceHandler) AddTransaction(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var req finance_dto.AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.Type = handlers.NormalizeEnum(req.Type)
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.AddTransaction(c.Context(), session, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_add_transaction", resp)
}

func (h *FinanceHandler) GetCostCenter(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param finance_dto.ParamProjectID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.GetCostCenter(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_cost_center", resp)
}

func (h *FinanceHandler) ListCostCenters(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListCostCenters(c.Context(), session)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_cost_centers", resp)
}

func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param finance_dto.ParamProjectID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var filter finance_dto.TransactionListFilter
	if err := handlers.ParseQuery(c, h.validator, &filter); err != nil {
		return err
	}

	resp, err := h.service.ListTransactions(c.Context(), session, param.ID, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_transactions", resp)
}
