package approval_handlers

import (
	approval_dto "github.com/Xenn-00/fitout-meister/internal/dtos/approval-dto"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	approval_case "github.com/Xenn-00/fitout-meister/internal/use-cases/approval-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type ApprovalHandler struct {
	validator *validator.Validate
	service   approval_case.ApprovalServiceContract
	i18n      internal_i18n.Service
}

func NewApprovalHandler(db *pgxpool.Pool, redis *redis.Client, publisher feed.Publisher, taskQueue queue.TaskQueueClient, i18n *internal_i18n.I18nService) *ApprovalHandler {
	return &ApprovalHandler{
		validator: handlers.NewValidator(),
		service:   approval_case.NewApprovalService(db, redis, publisher, taskQueue),
		i18n:      i18n,
	}
}

func (h *ApprovalHandler) Submit(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var req approval_dto.SubmitApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.RequestType = handlers.NormalizeEnum(req.RequestType)
	if req.Priority != nil {
		p := handlers.NormalizeEnum(*req.Priority)
		req.Priority = &p
	}
	if req.TargetRole != nil {
		r := handlers.NormalizeEnum(*req.TargetRole)
		req.TargetRole = &r
	}
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.Submit(c.Context(), session, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_submit_approval", resp)
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param approval_dto.ParamApprovalID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	// Leerer Body ist erlaubt, nicht delegierende Anträge brauchen keine Angaben.
	var req approval_dto.ApproveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
		}
		if err := h.validator.Struct(req); err != nil {
			return app_errors.NewValidationError(app_errors.ParseValidationError(err))
		}
	}

	resp, err := h.service.Approve(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_approve", resp)
}

func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param approval_dto.ParamApprovalID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req approval_dto.RejectRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.Reject(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_reject", resp)
}

func (h *ApprovalHandler) EditReview(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param approval_dto.ParamApprovalID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req approval_dto.EditReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.Decision = handlers.NormalizeStatusCase(req.Decision)
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.EditReview(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_edit_review", resp)
}

func (h *ApprovalHandler) SuggestAssignees(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param approval_dto.ParamApprovalID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.SuggestAssignees(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_suggest_assignees", resp)
}

func (h *ApprovalHandler) List(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var filter approval_dto.ApprovalListFilter
	if err := c.QueryParser(&filter); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if filter.Status != nil {
		s := handlers.NormalizeStatusCase(*filter.Status)
		filter.Status = &s
	}
	if filter.RequestType != nil {
		t := handlers.NormalizeEnum(*filter.RequestType)
		filter.RequestType = &t
	}
	if err := h.validator.Struct(filter); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.List(c.Context(), session, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_approvals", resp)
}

func (h *ApprovalHandler) Get(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param approval_dto.ParamApprovalID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.Get(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_approval", resp)
}
