package case_case

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/leadio"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	activity_repo "github.com/Xenn-00/fitout-meister/internal/repo/activity-repo"
	case_repo "github.com/Xenn-00/fitout-meister/internal/repo/case-repo"
	notification_repo "github.com/Xenn-00/fitout-meister/internal/repo/notification-repo"
	task_repo "github.com/Xenn-00/fitout-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const defaultImportSource = "Bulk Import"

// Obergrenze für den CSV-Export.
const exportLimit = 5000

var (
	caseWriters   = []entity.UserRole{entity.RoleAdmin, entity.RoleManager, entity.RoleSalesManager, entity.RoleSalesTeam}
	teamAssigners = []entity.UserRole{entity.RoleAdmin, entity.RoleManager, entity.RoleSalesManager}
)

type CaseService struct {
	repo         case_repo.CaseRepoContract
	taskRepo     task_repo.TaskRepoContract
	userRepo     user_repo.UserRepoContract
	activityRepo activity_repo.ActivityRepoContract
	txManager    tx.TxManager
	router       TaskRouterContract
	activity     emitter.ActivityLogger
	notifier     emitter.NotificationEmitter
	publisher    feed.Publisher
	taskQueue    queue.TaskQueueClient
	now          func() time.Time
}

func NewCaseService(db *pgxpool.Pool, publisher feed.Publisher, taskQueue queue.TaskQueueClient) CaseServiceContract {
	caseRepo := case_repo.NewCaseRepo(db)
	taskRepo := task_repo.NewTaskRepo(db)
	userRepo := user_repo.NewUserRepo(db)
	activityRepo := activity_repo.NewActivityRepo(db)
	notifier := emitter.NewNotificationEmitter(notification_repo.NewNotificationRepo(db), publisher, taskQueue)
	activity := emitter.NewActivityLogger(activityRepo)

	return &CaseService{
		repo:         caseRepo,
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		txManager:    tx.NewPgxTxManager(db),
		router:       NewTaskRouter(caseRepo, taskRepo, userRepo, notifier, activity, publisher, taskQueue),
		activity:     activity,
		notifier:     notifier,
		publisher:    publisher,
		taskQueue:    taskQueue,
		now:          time.Now,
	}
}

func (s *CaseService) CreateCase(ctx context.Context, session entity.Session, req *case_dto.CreateCaseRequest) (entity.CaseView, *app_errors.AppError) {
	if !session.HasRole(caseWriters...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	budget := decimal.Zero
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return nil, app_errors.NewFieldValidationError("budget", "min", "validation.non_negative_amount")
		}
		budget = *req.Budget
	}

	priority := entity.PriorityMedium
	if req.Priority != nil {
		priority = entity.CasePriority(*req.Priority)
	}

	assignedSales := req.AssignedSales
	if assignedSales == nil && session.Role == entity.RoleSalesTeam {
		self := session.UserID
		assignedSales = &self
	}
	if assignedSales != nil {
		if err := s.checkTeamMember(ctx, session, "assigned_sales", *assignedSales); err != nil {
			return nil, err
		}
	}

	id, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewInternalError(idErr)
	}
	now := s.now()
	c := &entity.CaseEntity{
		ID:            id.String(),
		OrgID:         session.OrgID,
		ClientName:    strings.TrimSpace(req.ClientName),
		ProjectName:   strings.TrimSpace(req.ProjectName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:        strings.TrimSpace(req.Mobile),
		SiteAddress:   req.SiteAddress,
		Source:        req.Source,
		Priority:      priority,
		Status:        entity.CaseNew,
		IsProject:     false,
		AssignedSales: assignedSales,
		AssignedTeam:  map[entity.UserRole]string{},
		Budget:        budget,
		CreatedBy:     session.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.Validate(); err != nil {
		return nil, app_errors.NewInternalError(err)
	}

	if err := s.repo.Create(ctx, nil, c); err != nil {
		return nil, err
	}

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  c.ID,
		Action:  entity.ActivityCaseCreated,
		Message: fmt.Sprintf("Lead %s created", c.ClientName),
	})
	s.publishCases(ctx, session.OrgID)

	return entity.ToCaseView(c), nil
}

func (s *CaseService) GetCase(ctx context.Context, session entity.Session, caseID string) (entity.CaseView, *app_errors.AppError) {
	c, err := s.repo.FindByID(ctx, nil, session.OrgID, caseID)
	if err != nil {
		return nil, err
	}
	return entity.ToCaseView(c), nil
}

func (s *CaseService) ListCases(ctx context.Context, session entity.Session, filter case_dto.CaseListFilter) ([]entity.CaseView, *app_errors.AppError) {
	cases, err := s.repo.List(ctx, session.OrgID, toCaseFilter(filter))
	if err != nil {
		return nil, err
	}

	views := make([]entity.CaseView, 0, len(cases))
	for i := range cases {
		views = append(views, entity.ToCaseView(&cases[i]))
	}
	return views, nil
}

func (s *CaseService) UpdateCase(ctx context.Context, session entity.Session, caseID string, req *case_dto.UpdateCaseRequest) (entity.CaseView, *app_errors.AppError) {
	if !session.HasRole(caseWriters...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	changesTeam := req.AssignedSales != nil || req.AssignedProcurement != nil || req.AssignedTeam != nil
	if changesTeam && !session.HasRole(teamAssigners...) {
		return nil, app_errors.NewForbiddenError("case.team_assignment_forbidden")
	}

	model := entity.CaseUpdate{
		ClientName:          req.ClientName,
		ProjectName:         req.ProjectName,
		Email:               req.Email,
		Mobile:              req.Mobile,
		SiteAddress:         req.SiteAddress,
		Source:              req.Source,
		AssignedSales:       req.AssignedSales,
		AssignedProcurement: req.AssignedProcurement,
	}
	if req.Priority != nil {
		p := entity.CasePriority(*req.Priority)
		model.Priority = &p
	}
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return nil, app_errors.NewFieldValidationError("budget", "min", "validation.non_negative_amount")
		}
		model.Budget = req.Budget
	}
	for field, userID := range map[string]*string{"assigned_sales": req.AssignedSales, "assigned_procurement": req.AssignedProcurement} {
		if userID == nil {
			continue
		}
		if err := s.checkTeamMember(ctx, session, field, *userID); err != nil {
			return nil, err
		}
	}
	if req.AssignedTeam != nil {
		model.AssignedTeam = make(map[entity.UserRole]string, len(req.AssignedTeam))
		for role, userID := range req.AssignedTeam {
			if err := s.checkTeamMember(ctx, session, "assigned_team."+role, userID); err != nil {
				return nil, err
			}
			model.AssignedTeam[entity.UserRole(role)] = userID
		}
	}
	if model.IsEmpty() {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", errors.New("no fields to update"))
	}

	c, err := s.repo.Update(ctx, session.OrgID, caseID, model)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:  c.ID,
		Action:  entity.ActivityCaseUpdated,
		Message: "Case details updated",
	})
	s.publishCases(ctx, session.OrgID)

	return entity.ToCaseView(c), nil
}

// checkTeamMember: nur aktive Nutzer der eigenen Organisation dürfen am Case eingetragen werden.
// Ein leerer Wert entfernt die Zuordnung und wird nicht geprüft.
func (s *CaseService) checkTeamMember(ctx context.Context, session entity.Session, field, userID string) *app_errors.AppError {
	if userID == "" || userID == session.UserID {
		return nil
	}
	u, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err.Code == fiber.StatusNotFound {
			return app_errors.NewFieldValidationError(field, "unknown", "case.invalid_team_member")
		}
		return err
	}
	if u.OrgID != session.OrgID || !u.IsActive {
		return app_errors.NewFieldValidationError(field, "unknown", "case.invalid_team_member")
	}
	return nil
}

func (s *CaseService) DeleteCase(ctx context.Context, session entity.Session, caseID string) *app_errors.AppError {
	if !session.HasRole(entity.RoleAdmin) {
		return app_errors.NewForbiddenError("forbidden")
	}
	if err := s.repo.Delete(ctx, session.OrgID, caseID); err != nil {
		return err
	}
	log.Info().Str("case_id", caseID).Str("by", session.UserID).Msg("Case gelöscht")
	s.publishCases(ctx, session.OrgID)
	return nil
}

func (s *CaseService) TransitionCase(ctx context.Context, session entity.Session, caseID string, req *case_dto.TransitionRequest) (*case_dto.RouteResult, *app_errors.AppError) {
	return s.router.RouteOnTransition(ctx, session, caseID, entity.CaseStatus(req.FromStatus), entity.CaseStatus(req.ToStatus))
}

// SetStatus deckt die Wechsel ohne Routing ab: Kontaktaufnahme, Verlust, Pausieren und Wiederaufnahme.
func (s *CaseService) SetStatus(ctx context.Context, session entity.Session, caseID string, req *case_dto.TransitionRequest) (entity.CaseView, *app_errors.AppError) {
	from, to := entity.CaseStatus(req.FromStatus), entity.CaseStatus(req.ToStatus)
	if !from.IsValid() {
		return nil, app_errors.NewFieldValidationError("from_status", "caseStatus", "validation.case_status")
	}
	if !to.IsValid() {
		return nil, app_errors.NewFieldValidationError("to_status", "caseStatus", "validation.case_status")
	}
	if IsRoutedTransition(from, to) {
		return nil, app_errors.NewFieldValidationError("to_status", "routed", "case.use_transition")
	}
	if !isManualTransition(from, to) {
		return nil, app_errors.NewFieldValidationError("to_status", "transition", "case.invalid_transition")
	}
	if !session.HasRole(caseWriters...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	c, err := s.repo.FindByID(ctx, nil, session.OrgID, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != from {
		return nil, app_errors.NewConflictError("conflict.case_status_changed", fmt.Errorf("case %s is %s, not %s", c.ID, c.Status, from))
	}

	isProject := to.IsProjectStage()
	ok, err := s.repo.TransitionStatus(ctx, nil, session.OrgID, c.ID, from, to, isProject)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app_errors.NewConflictError("conflict.case_status_changed", fmt.Errorf("case %s changed concurrently", c.ID))
	}
	c.Status = to
	c.IsProject = isProject

	s.logActivity(ctx, session, emitter.Activity{
		CaseID:     c.ID,
		Action:     entity.ActivityStatusChanged,
		FromStatus: &from,
		ToStatus:   &to,
		Message:    fmt.Sprintf("Status changed from %s to %s", from, to),
	})
	s.publishCases(ctx, session.OrgID)

	return entity.ToCaseView(c), nil
}

func (s *CaseService) ListActivities(ctx context.Context, session entity.Session, caseID string, filter case_dto.ActivityListFilter) ([]entity.CaseActivityEntity, *app_errors.AppError) {
	if _, err := s.repo.FindByID(ctx, nil, session.OrgID, caseID); err != nil {
		return nil, err
	}
	limit, offset := paging(filter.Limit, filter.Page, 50)
	return s.activityRepo.ListByCase(ctx, caseID, limit, offset)
}

func (s *CaseService) ExportCSV(ctx context.Context, session entity.Session, w io.Writer, filter case_dto.CaseListFilter) *app_errors.AppError {
	if !session.HasRole(caseWriters...) {
		return app_errors.NewForbiddenError("forbidden")
	}

	f := toCaseFilter(filter)
	f.Limit, f.Offset = exportLimit, 0
	cases, err := s.repo.List(ctx, session.OrgID, f)
	if err != nil {
		return err
	}

	if err := leadio.WriteCSV(w, cases); err != nil {
		return app_errors.NewInternalError(err)
	}
	return nil
}

func (s *CaseService) ImportLeads(ctx context.Context, session entity.Session, data []byte) (*case_dto.ImportResponse, *app_errors.AppError) {
	if !session.HasRole(caseWriters...) {
		return nil, app_errors.NewForbiddenError("forbidden")
	}

	parsed, parseErr := leadio.Parse(data)
	if parseErr != nil {
		switch {
		case errors.Is(parseErr, leadio.ErrEmptyInput):
			return nil, app_errors.NewFieldValidationError("file", "required", "import.empty")
		case errors.Is(parseErr, leadio.ErrNoLeadsInText):
			return nil, app_errors.NewFieldValidationError("file", "no_leads", "import.no_leads_found")
		case errors.Is(parseErr, leadio.ErrTooManyLeads):
			return nil, app_errors.NewFieldValidationError("file", "max", "import.too_many_leads")
		default:
			return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", parseErr)
		}
	}

	resp := &case_dto.ImportResponse{
		Format:  string(parsed.Format),
		Skipped: len(parsed.Errors),
	}
	for _, e := range parsed.Errors {
		resp.Errors = append(resp.Errors, case_dto.ImportRowError{Row: e.Row, Reason: e.Reason})
	}
	if len(parsed.Candidates) == 0 {
		return resp, nil
	}

	now := s.now()
	cases := make([]entity.CaseEntity, 0, len(parsed.Candidates))
	for _, cand := range parsed.Candidates {
		id, idErr := uuid.NewV7()
		if idErr != nil {
			return nil, app_errors.NewInternalError(idErr)
		}
		source := cand.Source
		if source == "" {
			source = defaultImportSource
		}
		c := entity.CaseEntity{
			ID:           id.String(),
			OrgID:        session.OrgID,
			ClientName:   cand.ClientName,
			ProjectName:  cand.ProjectName,
			Email:        cand.Email,
			Mobile:       cand.Mobile,
			Source:       source,
			Priority:     cand.Priority,
			Status:       entity.CaseNew,
			AssignedTeam: map[entity.UserRole]string{},
			Budget:       cand.Budget,
			CreatedBy:    session.UserID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if session.Role == entity.RoleSalesTeam {
			self := session.UserID
			c.AssignedSales = &self
		}
		cases = append(cases, c)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	imported, err := s.repo.CreateMany(ctx, t, cases)
	if err != nil {
		return nil, err
	}
	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	resp.Imported = imported

	log.Info().Str("org_id", session.OrgID).Int("imported", imported).Int("skipped", resp.Skipped).Str("format", resp.Format).Msg("Leads importiert")

	for i := range cases[:imported] {
		s.logActivity(ctx, session, emitter.Activity{
			CaseID:  cases[i].ID,
			Action:  entity.ActivityLeadImported,
			Message: fmt.Sprintf("Lead imported from %s", resp.Format),
		})
	}
	s.publishCases(ctx, session.OrgID)

	return resp, nil
}

func (s *CaseService) logActivity(ctx context.Context, session entity.Session, a emitter.Activity) {
	if err := s.activity.Log(ctx, session, a); err != nil {
		log.Warn().Err(err.Err).Str("case_id", a.CaseID).Str("action", string(a.Action)).Msg("Aktivität konnte nicht gespeichert werden")
	}
}

func (s *CaseService) publishCases(ctx context.Context, orgID string) {
	if err := s.publisher.Publish(ctx, orgID, feed.Cases); err != nil {
		log.Warn().Err(err).Str("org_id", orgID).Msg("Case-Feed konnte nicht benachrichtigt werden")
	}
}
