package case_case

import (
	"context"
	"fmt"
	"time"

	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	case_repo "github.com/Xenn-00/fitout-meister/internal/repo/case-repo"
	task_repo "github.com/Xenn-00/fitout-meister/internal/repo/task-repo"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Vorlauf der Deadline-Erinnerung.
const reminderLead = 2 * time.Hour

type transition struct {
	from entity.CaseStatus
	to   entity.CaseStatus
}

type routeRule struct {
	taskType entity.TaskType
	roles    []entity.UserRole
	deadline time.Duration
	// keepActor: der Handelnde übernimmt die Aufgabe selbst, wenn er eine der Rollen hat.
	keepActor bool
	noTask    bool
}

var siteVisitRule = routeRule{
	taskType: entity.TaskSiteVisit,
	roles:    []entity.UserRole{entity.RoleSiteEngineer},
	deadline: 48 * time.Hour,
}

var routeTable = map[transition]routeRule{
	{entity.CaseNew, entity.CaseSiteVisit}:       siteVisitRule,
	{entity.CaseContacted, entity.CaseSiteVisit}: siteVisitRule,
	{entity.CaseSiteVisit, entity.CaseDrawing}: {
		taskType:  entity.TaskDrawing,
		roles:     []entity.UserRole{entity.RoleDrawingTeam, entity.RoleSiteEngineer},
		deadline:  24 * time.Hour,
		keepActor: true,
	},
	{entity.CaseDrawing, entity.CaseBOQ}: {
		taskType: entity.TaskBOQ,
		roles:    []entity.UserRole{entity.RoleQuotationTeam},
		deadline: 48 * time.Hour,
	},
	{entity.CaseBOQ, entity.CaseQuotation}: {
		taskType: entity.TaskQuotation,
		roles:    []entity.UserRole{entity.RoleQuotationTeam},
		deadline: 24 * time.Hour,
	},
	{entity.CaseQuotation, entity.CaseProcurement}: {
		taskType: entity.TaskProcurementAudit,
		roles:    []entity.UserRole{entity.RoleProcurementTeam},
		deadline: 48 * time.Hour,
	},
	{entity.CaseProcurement, entity.CaseExecution}: {
		taskType: entity.TaskExecution,
		roles:    []entity.UserRole{entity.RoleExecutionTeam},
		deadline: 72 * time.Hour,
	},
	{entity.CaseExecution, entity.CaseCompleted}: {noTask: true},
}

// Aufgaben, die ohne Statuswechsel entstehen.
var spawnTable = map[entity.TaskType]routeRule{
	entity.TaskProcurementBidding: {
		taskType: entity.TaskProcurementBidding,
		roles:    []entity.UserRole{entity.RoleProcurementTeam},
		deadline: 72 * time.Hour,
	},
}

// Abschluss dieser Aufgaben schiebt den Case eine Stufe weiter.
var completionRoutes = map[entity.TaskType]transition{
	entity.TaskSiteVisit: {entity.CaseSiteVisit, entity.CaseDrawing},
	entity.TaskDrawing:   {entity.CaseDrawing, entity.CaseBOQ},
	entity.TaskBOQ:       {entity.CaseBOQ, entity.CaseQuotation},
	entity.TaskExecution: {entity.CaseExecution, entity.CaseCompleted},
}

// IsRoutedTransition meldet, ob für den Wechsel eine Regel existiert.
func IsRoutedTransition(from, to entity.CaseStatus) bool {
	_, ok := routeTable[transition{from, to}]
	return ok
}

type TaskRouter struct {
	caseRepo  case_repo.CaseRepoContract
	taskRepo  task_repo.TaskRepoContract
	userRepo  user_repo.UserRepoContract
	notifier  emitter.NotificationEmitter
	activity  emitter.ActivityLogger
	publisher feed.Publisher
	taskQueue queue.TaskQueueClient
	now       func() time.Time
}

func NewTaskRouter(
	caseRepo case_repo.CaseRepoContract,
	taskRepo task_repo.TaskRepoContract,
	userRepo user_repo.UserRepoContract,
	notifier emitter.NotificationEmitter,
	activity emitter.ActivityLogger,
	publisher feed.Publisher,
	taskQueue queue.TaskQueueClient,
) *TaskRouter {
	return &TaskRouter{
		caseRepo:  caseRepo,
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		activity:  activity,
		publisher: publisher,
		taskQueue: taskQueue,
		now:       time.Now,
	}
}

// RouteOnTransition setzt den Status und stößt danach Aufgabe, Benachrichtigungen und
// Aktivität an. Diese drei Schritte sind unabhängig: alle werden versucht, Fehler
// werden gesammelt zurückgegeben, bereits geschriebene Daten bleiben stehen.
func (r *TaskRouter) RouteOnTransition(ctx context.Context, session entity.Session, caseID string, from, to entity.CaseStatus) (*case_dto.RouteResult, *app_errors.AppError) {
	if !from.IsValid() {
		return nil, app_errors.NewFieldValidationError("from_status", "caseStatus", "validation.case_status")
	}
	if !to.IsValid() {
		return nil, app_errors.NewFieldValidationError("to_status", "caseStatus", "validation.case_status")
	}

	c, err := r.caseRepo.FindByID(ctx, nil, session.OrgID, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != from {
		return nil, app_errors.NewConflictError("conflict.case_status_changed", fmt.Errorf("case %s is %s, not %s", c.ID, c.Status, from))
	}

	result := &case_dto.RouteResult{
		CaseID:     c.ID,
		FromStatus: from,
		ToStatus:   to,
		IsProject:  c.IsProject,
	}

	rule, ok := routeTable[transition{from, to}]
	if !ok {
		log.Debug().Str("case_id", c.ID).Str("from", string(from)).Str("to", string(to)).Msg("Kein Routing für diesen Statuswechsel")
		return result, nil
	}

	isProject := to.IsProjectStage()
	updated, err := r.caseRepo.TransitionStatus(ctx, nil, session.OrgID, c.ID, from, to, isProject)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, app_errors.NewConflictError("conflict.case_status_changed", fmt.Errorf("case %s changed concurrently", c.ID))
	}
	c.Status = to
	c.IsProject = isProject
	result.Routed = true
	result.IsProject = isProject

	r.dispatch(ctx, session, c, rule, &from, result)
	r.publishCases(ctx, session.OrgID)

	return result, partialFailure(result)
}

// SpawnTask legt eine Aufgabe ohne Statuswechsel an, z.B. die Ausschreibung nach einem Audit.
func (r *TaskRouter) SpawnTask(ctx context.Context, session entity.Session, c *entity.CaseEntity, taskType entity.TaskType) (*case_dto.RouteResult, *app_errors.AppError) {
	rule, ok := spawnTable[taskType]
	if !ok {
		return nil, app_errors.NewFieldValidationError("type", "taskType", "validation.task_type")
	}

	result := &case_dto.RouteResult{
		Routed:     true,
		CaseID:     c.ID,
		FromStatus: c.Status,
		ToStatus:   c.Status,
		IsProject:  c.IsProject,
	}

	r.dispatch(ctx, session, c, rule, nil, result)
	r.publishCases(ctx, session.OrgID)

	return result, partialFailure(result)
}

func (r *TaskRouter) dispatch(ctx context.Context, session entity.Session, c *entity.CaseEntity, rule routeRule, from *entity.CaseStatus, result *case_dto.RouteResult) {
	var task *entity.CaseTaskEntity
	if !rule.noTask {
		created, err := r.createTask(ctx, session, c, rule)
		if err != nil {
			log.Error().Err(err.Err).Str("case_id", c.ID).Str("task_type", string(rule.taskType)).Msg("Aufgabe konnte nicht angelegt werden")
			result.Failures = append(result.Failures, case_dto.RouteStepError{Step: "task", MessageKey: err.MessageKey})
		} else {
			task = created
			result.Task = created
			r.scheduleReminder(session.OrgID, created)
		}
	}

	for _, n := range r.buildNotifications(session, c, from, task) {
		rec, err := r.notifier.Emit(ctx, session.OrgID, n)
		if err != nil {
			log.Error().Err(err.Err).Str("case_id", c.ID).Str("user_id", n.UserID).Msg("Benachrichtigung fehlgeschlagen")
			result.Failures = append(result.Failures, case_dto.RouteStepError{Step: "notification", MessageKey: err.MessageKey})
			continue
		}
		result.NotificationIDs = append(result.NotificationIDs, rec.ID)
	}

	act := emitter.Activity{CaseID: c.ID}
	if from != nil {
		to := c.Status
		act.Action = entity.ActivityStatusChanged
		act.FromStatus = from
		act.ToStatus = &to
		act.Message = fmt.Sprintf("Status changed from %s to %s", *from, to)
	} else {
		act.Action = entity.ActivityTaskCreated
		act.Message = fmt.Sprintf("%s task created", rule.taskType)
	}
	if task != nil {
		act.Message += fmt.Sprintf(", %s task assigned to %s", task.Type, describeAssignee(task))
	}
	if err := r.activity.Log(ctx, session, act); err != nil {
		log.Error().Err(err.Err).Str("case_id", c.ID).Msg("Aktivität konnte nicht gespeichert werden")
		result.Failures = append(result.Failures, case_dto.RouteStepError{Step: "activity", MessageKey: err.MessageKey})
	} else {
		result.ActivityLogged = true
	}
}

func (r *TaskRouter) createTask(ctx context.Context, session entity.Session, c *entity.CaseEntity, rule routeRule) (*entity.CaseTaskEntity, *app_errors.AppError) {
	active, err := r.taskRepo.HasActiveOfType(ctx, c.ID, rule.taskType)
	if err != nil {
		log.Warn().Err(err.Err).Str("case_id", c.ID).Msg("Prüfung auf offene Aufgaben fehlgeschlagen")
	} else if active {
		log.Warn().Str("case_id", c.ID).Str("task_type", string(rule.taskType)).Msg("Case hat bereits eine offene Aufgabe dieses Typs")
	}

	assignee, role := r.resolveAssignee(ctx, session, c, rule)

	id, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewInternalError(idErr)
	}
	now := r.now()
	deadline := now.Add(rule.deadline)

	task := &entity.CaseTaskEntity{
		ID:           id.String(),
		CaseID:       c.ID,
		Type:         rule.taskType,
		AssignedRole: role,
		AssignedTo:   assignee,
		AssignedBy:   session.UserID,
		Status:       entity.TaskPending,
		Priority:     c.Priority,
		Deadline:     &deadline,
		CreatedAt:    now,
	}
	if task.Priority == "" {
		task.Priority = entity.PriorityMedium
	}

	if err := r.taskRepo.Create(ctx, nil, task); err != nil {
		return nil, err
	}
	return task, nil
}

// resolveAssignee: Kontinuität des Handelnden, dann Teammitglied am Case, dann der
// alphabetisch erste aktive Nutzer der ersten Rolle. Sonst bleibt die Aufgabe in der Rollen-Queue.
func (r *TaskRouter) resolveAssignee(ctx context.Context, session entity.Session, c *entity.CaseEntity, rule routeRule) (*string, entity.UserRole) {
	if rule.keepActor && session.HasRole(rule.roles...) {
		actor := session.UserID
		return &actor, session.Role
	}

	for _, role := range rule.roles {
		id, ok := c.TeamMember(role)
		if !ok {
			continue
		}
		if !r.isActiveMember(ctx, c.OrgID, id) {
			log.Warn().Str("case_id", c.ID).Str("user_id", id).Str("role", string(role)).Msg("Teammitglied nicht aktiv oder fremd, wird übersprungen")
			continue
		}
		return &id, role
	}

	role := rule.roles[0]
	u, err := r.userRepo.FirstActiveByRole(ctx, c.OrgID, role)
	if err != nil {
		log.Warn().Err(err.Err).Str("role", string(role)).Msg("Queue-Default konnte nicht ermittelt werden, Aufgabe bleibt unzugewiesen")
		return nil, role
	}
	if u == nil {
		return nil, role
	}
	return &u.ID, role
}

func (r *TaskRouter) isActiveMember(ctx context.Context, orgID, userID string) bool {
	u, err := r.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err.Code != fiber.StatusNotFound {
			log.Warn().Err(err.Err).Str("user_id", userID).Msg("Teammitglied konnte nicht geladen werden")
		}
		return false
	}
	return u.OrgID == orgID && u.IsActive
}

func (r *TaskRouter) buildNotifications(session entity.Session, c *entity.CaseEntity, from *entity.CaseStatus, task *entity.CaseTaskEntity) []emitter.Notification {
	var out []emitter.Notification
	notified := map[string]bool{}

	if task != nil && task.AssignedTo != nil {
		out = append(out, emitter.Notification{
			UserID:     *task.AssignedTo,
			Title:      "New task assigned",
			Message:    fmt.Sprintf("%s task for %s, due %s", task.Type, c.ClientName, task.Deadline.Format("02 Jan 2006 15:04")),
			EntityType: entity.EntityTask,
			EntityID:   task.ID,
			Type:       entity.NotificationInfo,
		})
		notified[*task.AssignedTo] = true
	}

	if c.CreatedBy != "" && !notified[c.CreatedBy] {
		msg := fmt.Sprintf("%s moved to %s", c.ClientName, c.Status)
		if from != nil {
			msg = fmt.Sprintf("%s moved from %s to %s", c.ClientName, *from, c.Status)
		} else if task != nil {
			msg = fmt.Sprintf("%s task created for %s", task.Type, c.ClientName)
		}
		ntype := entity.NotificationInfo
		if c.Status == entity.CaseCompleted {
			ntype = entity.NotificationSuccess
		}
		out = append(out, emitter.Notification{
			UserID:     c.CreatedBy,
			Title:      "Case updated",
			Message:    msg,
			EntityType: entity.EntityCase,
			EntityID:   c.ID,
			Type:       ntype,
		})
	}

	return out
}

func (r *TaskRouter) scheduleReminder(orgID string, task *entity.CaseTaskEntity) {
	scheduleDeadlineReminder(r.taskQueue, orgID, task, r.now())
}

// scheduleDeadlineReminder plant die Erinnerung zwei Stunden vor der Deadline, bei knappen Fristen sofort.
func scheduleDeadlineReminder(q queue.TaskQueueClient, orgID string, task *entity.CaseTaskEntity, now time.Time) {
	if task.Deadline == nil || task.AssignedTo == nil {
		return
	}
	remindAt := task.Deadline.Add(-reminderLead)
	if remindAt.Before(now) {
		remindAt = now
	}
	payload := &worker_task.CaseTaskDeadlineReminderPayload{
		TaskID:   task.ID,
		OrgID:    orgID,
		Deadline: *task.Deadline,
	}
	if err := q.EnqueueCaseTaskDeadlineReminder(payload, remindAt); err != nil {
		log.Warn().Err(err).Str("task_id", task.ID).Msg("Deadline-Erinnerung konnte nicht eingeplant werden")
	}
}

func (r *TaskRouter) publishCases(ctx context.Context, orgID string) {
	if err := r.publisher.Publish(ctx, orgID, feed.Cases); err != nil {
		log.Warn().Err(err).Str("org_id", orgID).Msg("Case-Feed konnte nicht benachrichtigt werden")
	}
}

func describeAssignee(task *entity.CaseTaskEntity) string {
	if task.AssignedTo == nil {
		return string(task.AssignedRole) + " queue"
	}
	return *task.AssignedTo
}

// partialFailure fasst fehlgeschlagene Teilschritte zu einem Fehler zusammen.
func partialFailure(result *case_dto.RouteResult) *app_errors.AppError {
	if len(result.Failures) == 0 {
		return nil
	}
	details := make([]app_errors.FieldError, 0, len(result.Failures))
	for _, f := range result.Failures {
		details = append(details, app_errors.FieldError{
			Field:      f.Step,
			Reason:     "failed",
			MessageKey: f.MessageKey,
		})
	}
	return &app_errors.AppError{
		Code:       fiber.StatusMultiStatus,
		Type:       app_errors.ErrPartial,
		MessageKey: "routing.partial_failure",
		Details:    details,
		Err:        fmt.Errorf("%d routing step(s) failed for case %s", len(result.Failures), result.CaseID),
	}
}
