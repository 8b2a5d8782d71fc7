package case_handlers

import (
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

func (h *CaseHandler) ListCaseTasks(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	filter, err := h.taskFilter(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListCaseTasks(c.Context(), session, param.ID, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_tasks", resp)
}

func (h *CaseHandler) ListMyTasks(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	filter, err := h.taskFilter(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListMyTasks(c.Context(), session, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_tasks", resp)
}

func (h *CaseHandler) StartTask(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamTaskID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.StartTask(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_start_task", resp)
}

// CompleteTask schließt eine Aufgabe ab. Ein anschließendes Routing kann teilweise scheitern.
func (h *CaseHandler) CompleteTask(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamTaskID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.CompleteTask(c.Context(), session, param.ID)
	if resp == nil && err != nil {
		return err
	}

	return handlers.RespondRouted(c, h.i18n, "response.success_complete_task", resp, err)
}

func (h *CaseHandler) ReassignTask(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamTaskID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req case_dto.ReassignTaskRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.ReassignTask(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_reassign_task", resp)
}

func (h *CaseHandler) taskFilter(c *fiber.Ctx) (case_dto.TaskListFilter, *app_errors.AppError) {
	var filter case_dto.TaskListFilter
	if err := c.QueryParser(&filter); err != nil {
		return filter, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if filter.Status != nil {
		s := handlers.NormalizeStatusCase(*filter.Status)
		filter.Status = &s
	}
	if err := h.validator.Struct(filter); err != nil {
		return filter, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return filter, nil
}
