package case_handlers

import (
	"bytes"
	"fmt"
	"io"

	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/Xenn-00/fitout-meister/internal/leadio"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	case_case "github.com/Xenn-00/fitout-meister/internal/use-cases/case-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxImportBytes begrenzt Uploads für den Lead-Import.
const maxImportBytes = 2 << 20

type CaseHandler struct {
	validator *validator.Validate
	service   case_case.CaseServiceContract
	i18n      internal_i18n.Service
}

func NewCaseHandler(db *pgxpool.Pool, publisher feed.Publisher, taskQueue queue.TaskQueueClient, i18n *internal_i18n.I18nService) *CaseHandler {
	return &CaseHandler{
		validator: handlers.NewValidator(),
		service:   case_case.NewCaseService(db, publisher, taskQueue),
		i18n:      i18n,
	}
}

func (h *CaseHandler) CreateCase(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var req case_dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	if req.Priority != nil {
		p := handlers.NormalizeEnum(*req.Priority)
		req.Priority = &p
	}
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.CreateCase(c.Context(), session, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_create_case", resp)
}

func (h *CaseHandler) GetCase(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	resp, err := h.service.GetCase(c.Context(), session, param.ID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_case", resp)
}

func (h *CaseHandler) ListCases(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	filter, err := h.caseFilter(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListCases(c.Context(), session, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_cases", case_dto.CaseListResponse{Items: resp})
}

func (h *CaseHandler) UpdateCase(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var req case_dto.UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	if req.Priority != nil {
		p := handlers.NormalizeEnum(*req.Priority)
		req.Priority = &p
	}
	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.UpdateCase(c.Context(), session, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_case", resp)
}

func (h *CaseHandler) DeleteCase(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	if err := h.service.DeleteCase(c.Context(), session, param.ID); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_case", "Ok")
}

// TransitionCase führt einen gerouteten Statuswechsel aus.
func (h *CaseHandler) TransitionCase(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	req, err := h.transitionRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.TransitionCase(c.Context(), session, param.ID, req)
	if resp == nil && err != nil {
		return err
	}

	return handlers.RespondRouted(c, h.i18n, "response.success_transition_case", resp, err)
}

func (h *CaseHandler) SetStatus(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	req, err := h.transitionRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.SetStatus(c.Context(), session, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_case", resp)
}

func (h *CaseHandler) ListActivities(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param case_dto.ParamCaseID
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	var filter case_dto.ActivityListFilter
	if err := handlers.ParseQuery(c, h.validator, &filter); err != nil {
		return err
	}

	resp, err := h.service.ListActivities(c.Context(), session, param.ID, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_activities", resp)
}

// ExportCSV puffert den Export, damit ein Fehler noch als JSON beantwortet werden kann.
func (h *CaseHandler) ExportCSV(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	filter, err := h.caseFilter(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.Context(), session, &buf, filter); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, leadio.ExportFileName))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// ImportLeads nimmt entweder ein Multipart-Feld "file" oder den rohen Body entgegen.
func (h *CaseHandler) ImportLeads(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	data, err := importPayload(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ImportLeads(c.Context(), session, data)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_import_leads", resp)
}

func importPayload(c *fiber.Ctx) ([]byte, *app_errors.AppError) {
	fh, ferr := c.FormFile("file")
	if ferr != nil {
		body := c.Body()
		if len(body) == 0 {
			return nil, app_errors.NewFieldValidationError("file", "required", "import.empty")
		}
		if len(body) > maxImportBytes {
			return nil, app_errors.NewFieldValidationError("file", "max", "import.too_large")
		}
		return body, nil
	}

	if fh.Size > maxImportBytes {
		return nil, app_errors.NewFieldValidationError("file", "max", "import.too_large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportBytes))
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	return data, nil
}

func (h *CaseHandler) caseFilter(c *fiber.Ctx) (case_dto.CaseListFilter, *app_errors.AppError) {
	var filter case_dto.CaseListFilter
	if err := c.QueryParser(&filter); err != nil {
		return filter, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if filter.Status != nil {
		s := handlers.NormalizeEnum(*filter.Status)
		filter.Status = &s
	}
	if err := h.validator.Struct(filter); err != nil {
		return filter, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return filter, nil
}

func (h *CaseHandler) transitionRequest(c *fiber.Ctx) (*case_dto.TransitionRequest, *app_errors.AppError) {
	var req case_dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.FromStatus = handlers.NormalizeEnum(req.FromStatus)
	req.ToStatus = handlers.NormalizeEnum(req.ToStatus)
	if err := h.validator.Struct(req); err != nil {
		return nil, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return &req, nil
}
