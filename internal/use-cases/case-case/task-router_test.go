package case_case

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var routerNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type routerMocks struct {
	caseRepo  *MockCaseRepo
	taskRepo  *MockTaskRepo
	userRepo  *MockUserRepo
	notifier  *use_cases.MockNotificationEmitter
	activity  *use_cases.MockActivityLogger
	publisher *use_cases.MockPublisher
	queue     *use_cases.MockTaskQueue
}

func newTestRouter() (*TaskRouter, *routerMocks) {
	m := &routerMocks{
		caseRepo:  new(MockCaseRepo),
		taskRepo:  new(MockTaskRepo),
		userRepo:  new(MockUserRepo),
		notifier:  new(use_cases.MockNotificationEmitter),
		activity:  new(use_cases.MockActivityLogger),
		publisher: new(use_cases.MockPublisher),
		queue:     new(use_cases.MockTaskQueue),
	}
	r := NewTaskRouter(m.caseRepo, m.taskRepo, m.userRepo, m.notifier, m.activity, m.publisher, m.queue)
	r.now = func() time.Time { return routerNow }
	return r, m
}

func notifyTo(userID string) any {
	return mock.MatchedBy(func(n emitter.Notification) bool { return n.UserID == userID })
}

// Test 1: SITE_VISIT -> DRAWING, der Site Engineer behält die Aufgabe
func TestRouteOnTransition_SiteVisitToDrawing_KeepsActor(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "eng-1", OrgID: "org-1", Name: "Erik", Role: entity.RoleSiteEngineer}
	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", ClientName: "Acme", Status: entity.CaseSiteVisit, Priority: entity.PriorityHigh, CreatedBy: "sales-1"}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c1", entity.CaseSiteVisit, entity.CaseDrawing, false).Return(true, (*app_errors.AppError)(nil))
	m.taskRepo.On("HasActiveOfType", ctx, "c1", entity.TaskDrawing).Return(false, (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return((*app_errors.AppError)(nil))
	m.queue.On("EnqueueCaseTaskDeadlineReminder", mock.Anything, routerNow.Add(22*time.Hour)).Return(nil)
	m.notifier.On("Emit", ctx, "org-1", notifyTo("eng-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("sales-1")).Return(&entity.NotificationEntity{ID: "n2"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.MatchedBy(func(a emitter.Activity) bool {
		return a.CaseID == "c1" && a.Action == entity.ActivityStatusChanged &&
			*a.FromStatus == entity.CaseSiteVisit && *a.ToStatus == entity.CaseDrawing
	})).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseSiteVisit, entity.CaseDrawing)

	assert.Nil(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Routed)
	assert.False(t, res.IsProject)
	require.NotNil(t, res.Task)
	assert.Equal(t, "c1", res.Task.CaseID)
	assert.Equal(t, entity.TaskDrawing, res.Task.Type)
	assert.Equal(t, entity.TaskPending, res.Task.Status)
	assert.Equal(t, entity.PriorityHigh, res.Task.Priority)
	assert.Equal(t, "eng-1", *res.Task.AssignedTo)
	assert.Equal(t, entity.RoleSiteEngineer, res.Task.AssignedRole)
	assert.Equal(t, routerNow.Add(24*time.Hour), *res.Task.Deadline)
	assert.Equal(t, []string{"n1", "n2"}, res.NotificationIDs)
	assert.True(t, res.ActivityLogged)
	assert.Empty(t, res.Failures)

	m.caseRepo.AssertExpectations(t)
	m.taskRepo.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
	m.activity.AssertExpectations(t)
	m.queue.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

// Test 2: Handelnder ohne passende Rolle, Aufgabe geht an den Queue-Default
func TestRouteOnTransition_SiteVisitToDrawing_QueueDefault(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleSalesManager}
	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseSiteVisit, Priority: entity.PriorityMedium, CreatedBy: "mgr-1"}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c1", entity.CaseSiteVisit, entity.CaseDrawing, false).Return(true, (*app_errors.AppError)(nil))
	m.taskRepo.On("HasActiveOfType", ctx, "c1", entity.TaskDrawing).Return(false, (*app_errors.AppError)(nil))
	m.userRepo.On("FirstActiveByRole", ctx, "org-1", entity.RoleDrawingTeam).Return(&entity.UserEntity{ID: "draw-1", OrgID: "org-1"}, (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return((*app_errors.AppError)(nil))
	m.queue.On("EnqueueCaseTaskDeadlineReminder", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("Emit", ctx, "org-1", notifyTo("draw-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("mgr-1")).Return(&entity.NotificationEntity{ID: "n2"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseSiteVisit, entity.CaseDrawing)

	assert.Nil(t, err)
	require.NotNil(t, res.Task)
	assert.Equal(t, "draw-1", *res.Task.AssignedTo)
	assert.Equal(t, entity.RoleDrawingTeam, res.Task.AssignedRole)
	assert.Equal(t, "mgr-1", res.Task.AssignedBy)
	m.userRepo.AssertExpectations(t)
}

// Test 3: QUOTATION -> PROCUREMENT macht den Case zum Projekt
func TestRouteOnTransition_QuotationToProcurement_BecomesProject(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	proc := "proc-1"
	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	c := &entity.CaseEntity{ID: "c2", OrgID: "org-1", Status: entity.CaseQuotation, AssignedProcurement: &proc, CreatedBy: "sales-1"}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c2").Return(c, (*app_errors.AppError)(nil))
	m.userRepo.On("FindByUserID", ctx, "proc-1").Return(&entity.UserEntity{ID: "proc-1", OrgID: "org-1", IsActive: true}, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c2", entity.CaseQuotation, entity.CaseProcurement, true).Return(true, (*app_errors.AppError)(nil))
	m.taskRepo.On("HasActiveOfType", ctx, "c2", entity.TaskProcurementAudit).Return(false, (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return((*app_errors.AppError)(nil))
	m.queue.On("EnqueueCaseTaskDeadlineReminder", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("Emit", ctx, "org-1", notifyTo("proc-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("sales-1")).Return(&entity.NotificationEntity{ID: "n2"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c2", entity.CaseQuotation, entity.CaseProcurement)

	assert.Nil(t, err)
	assert.True(t, res.IsProject)
	require.NotNil(t, res.Task)
	assert.Equal(t, entity.TaskProcurementAudit, res.Task.Type)
	assert.Equal(t, "proc-1", *res.Task.AssignedTo)
	assert.Equal(t, routerNow.Add(48*time.Hour), *res.Task.Deadline)
	m.userRepo.AssertNotCalled(t, "FirstActiveByRole", mock.Anything, mock.Anything, mock.Anything)
	m.caseRepo.AssertExpectations(t)
}

// Test 3b: inaktives Teammitglied wird übersprungen, der Queue-Default übernimmt
func TestRouteOnTransition_SkipsInactiveTeamMember(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	c := &entity.CaseEntity{
		ID: "c4", OrgID: "org-1", ClientName: "Acme", Status: entity.CaseSiteVisit, CreatedBy: "sales-1",
		AssignedTeam: map[entity.UserRole]string{entity.RoleDrawingTeam: "other-org-user"},
	}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c4").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c4", entity.CaseSiteVisit, entity.CaseDrawing, false).Return(true, (*app_errors.AppError)(nil))
	m.taskRepo.On("HasActiveOfType", ctx, "c4", entity.TaskDrawing).Return(false, (*app_errors.AppError)(nil))
	m.userRepo.On("FindByUserID", ctx, "other-org-user").Return(&entity.UserEntity{ID: "other-org-user", OrgID: "org-2", IsActive: true}, (*app_errors.AppError)(nil))
	m.userRepo.On("FirstActiveByRole", ctx, "org-1", entity.RoleDrawingTeam).Return(&entity.UserEntity{ID: "d-1", OrgID: "org-1", IsActive: true}, (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return((*app_errors.AppError)(nil))
	m.queue.On("EnqueueCaseTaskDeadlineReminder", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("Emit", ctx, "org-1", notifyTo("d-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("sales-1")).Return(&entity.NotificationEntity{ID: "n2"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c4", entity.CaseSiteVisit, entity.CaseDrawing)

	assert.Nil(t, err)
	require.NotNil(t, res.Task)
	require.NotNil(t, res.Task.AssignedTo)
	assert.Equal(t, "d-1", *res.Task.AssignedTo)
	m.notifier.AssertNotCalled(t, "Emit", ctx, "org-1", notifyTo("other-org-user"))
}

// Test 4: Niemand mit der Rolle aktiv, Aufgabe bleibt in der Queue
func TestRouteOnTransition_NoQueueDefault_LeavesUnassigned(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "sales-1", OrgID: "org-1", Role: entity.RoleSalesTeam}
	c := &entity.CaseEntity{ID: "c3", OrgID: "org-1", Status: entity.CaseNew, CreatedBy: "sales-1"}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c3").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c3", entity.CaseNew, entity.CaseSiteVisit, false).Return(true, (*app_errors.AppError)(nil))
	m.taskRepo.On("HasActiveOfType", ctx, "c3", entity.TaskSiteVisit).Return(false, (*app_errors.AppError)(nil))
	m.userRepo.On("FirstActiveByRole", ctx, "org-1", entity.RoleSiteEngineer).Return((*entity.UserEntity)(nil), (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return((*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("sales-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c3", entity.CaseNew, entity.CaseSiteVisit)

	assert.Nil(t, err)
	require.NotNil(t, res.Task)
	assert.Nil(t, res.Task.AssignedTo)
	assert.Equal(t, entity.RoleSiteEngineer, res.Task.AssignedRole)
	assert.Equal(t, routerNow.Add(48*time.Hour), *res.Task.Deadline)
	assert.Equal(t, entity.PriorityMedium, res.Task.Priority)
	assert.Equal(t, []string{"n1"}, res.NotificationIDs)
	m.queue.AssertNotCalled(t, "EnqueueCaseTaskDeadlineReminder", mock.Anything, mock.Anything)
	m.notifier.AssertNumberOfCalls(t, "Emit", 1)
}

// Test 5: Unbekannter Wechsel schreibt nichts
func TestRouteOnTransition_UnrecognizedTransition_NoOp(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseNew}
	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))

	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseNew, entity.CaseDrawing)

	assert.Nil(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Routed)
	assert.Nil(t, res.Task)
	m.caseRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	m.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything)
	m.activity.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

// Test 6: Zielstatus außerhalb des Enums
func TestRouteOnTransition_InvalidToStatus(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseNew, entity.CaseStatus("ARCHIVED"))

	assert.Nil(t, res)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusBadRequest, err.Code)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	assert.Equal(t, "to_status", err.Details[0].Field)
	m.caseRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Test 7: Unbekannter Case
func TestRouteOnTransition_CaseNotFound(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	m.caseRepo.On("FindByID", ctx, nil, "org-1", "missing").Return((*entity.CaseEntity)(nil), app_errors.NewNotFoundError("case_not_found"))

	res, err := router.RouteOnTransition(ctx, session, "missing", entity.CaseSiteVisit, entity.CaseDrawing)

	assert.Nil(t, res)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.Code)
}

// Test 8: Gespeicherter Status weicht von from ab
func TestRouteOnTransition_StaleFromStatus(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseDrawing}
	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))

	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseSiteVisit, entity.CaseDrawing)

	assert.Nil(t, res)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusConflict, err.Code)
	assert.Equal(t, "conflict.case_status_changed", err.MessageKey)
}

// Test 9: Status wurde zwischen Lesen und Schreiben geändert
func TestRouteOnTransition_ConcurrentChange(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseDrawing}
	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c1", entity.CaseDrawing, entity.CaseBOQ, false).Return(false, (*app_errors.AppError)(nil))

	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseDrawing, entity.CaseBOQ)

	assert.Nil(t, res)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusConflict, err.Code)
	m.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// Test 10: Aufgabe und Aktivität scheitern, Benachrichtigung geht trotzdem raus
func TestRouteOnTransition_PartialFailure(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseDrawing, CreatedBy: "sales-1"}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c1", entity.CaseDrawing, entity.CaseBOQ, false).Return(true, (*app_errors.AppError)(nil))
	m.taskRepo.On("HasActiveOfType", ctx, "c1", entity.TaskBOQ).Return(false, (*app_errors.AppError)(nil))
	m.userRepo.On("FirstActiveByRole", ctx, "org-1", entity.RoleQuotationTeam).Return(&entity.UserEntity{ID: "qt-1"}, (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return(app_errors.NewInternalError(errors.New("connection reset")))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("sales-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return(app_errors.NewInternalError(errors.New("connection reset")))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c1", entity.CaseDrawing, entity.CaseBOQ)

	require.NotNil(t, res)
	assert.True(t, res.Routed)
	assert.Nil(t, res.Task)
	assert.Equal(t, []string{"n1"}, res.NotificationIDs)
	assert.False(t, res.ActivityLogged)
	require.Len(t, res.Failures, 2)

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrPartial, err.Type)
	assert.Equal(t, "routing.partial_failure", err.MessageKey)
	assert.Equal(t, fiber.StatusMultiStatus, err.Code)
	require.Len(t, err.Details, 2)
	assert.Equal(t, "task", err.Details[0].Field)
	assert.Equal(t, "activity", err.Details[1].Field)

	m.caseRepo.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

// Test 11: EXECUTION -> COMPLETED ohne Aufgabe
func TestRouteOnTransition_Completed_NoTask(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "exec-1", OrgID: "org-1", Role: entity.RoleExecutionTeam}
	c := &entity.CaseEntity{ID: "c4", OrgID: "org-1", Status: entity.CaseExecution, IsProject: true, CreatedBy: "sales-1"}

	m.caseRepo.On("FindByID", ctx, nil, "org-1", "c4").Return(c, (*app_errors.AppError)(nil))
	m.caseRepo.On("TransitionStatus", ctx, nil, "org-1", "c4", entity.CaseExecution, entity.CaseCompleted, true).Return(true, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", mock.MatchedBy(func(n emitter.Notification) bool {
		return n.UserID == "sales-1" && n.Type == entity.NotificationSuccess && n.EntityType == entity.EntityCase
	})).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.RouteOnTransition(ctx, session, "c4", entity.CaseExecution, entity.CaseCompleted)

	assert.Nil(t, err)
	assert.True(t, res.Routed)
	assert.Nil(t, res.Task)
	assert.True(t, res.ActivityLogged)
	m.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	m.notifier.AssertExpectations(t)
}

// Test 12: Ausschreibung ohne Statuswechsel
func TestSpawnTask_ProcurementBidding(t *testing.T) {
	ctx := context.Background()
	router, m := newTestRouter()

	session := entity.Session{UserID: "proc-9", OrgID: "org-1", Role: entity.RoleProcurementTeam}
	c := &entity.CaseEntity{ID: "c5", OrgID: "org-1", Status: entity.CaseProcurement, IsProject: true, CreatedBy: "sales-1"}

	m.taskRepo.On("HasActiveOfType", ctx, "c5", entity.TaskProcurementBidding).Return(false, (*app_errors.AppError)(nil))
	m.userRepo.On("FirstActiveByRole", ctx, "org-1", entity.RoleProcurementTeam).Return(&entity.UserEntity{ID: "proc-1"}, (*app_errors.AppError)(nil))
	m.taskRepo.On("Create", ctx, nil, mock.AnythingOfType("*entity.CaseTaskEntity")).Return((*app_errors.AppError)(nil))
	m.queue.On("EnqueueCaseTaskDeadlineReminder", mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("Emit", ctx, "org-1", notifyTo("proc-1")).Return(&entity.NotificationEntity{ID: "n1"}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", notifyTo("sales-1")).Return(&entity.NotificationEntity{ID: "n2"}, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.MatchedBy(func(a emitter.Activity) bool {
		return a.Action == entity.ActivityTaskCreated && a.FromStatus == nil
	})).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	res, err := router.SpawnTask(ctx, session, c, entity.TaskProcurementBidding)

	assert.Nil(t, err)
	require.NotNil(t, res.Task)
	assert.Equal(t, entity.TaskProcurementBidding, res.Task.Type)
	assert.Equal(t, routerNow.Add(72*time.Hour), *res.Task.Deadline)
	assert.Equal(t, entity.CaseProcurement, res.ToStatus)
	m.caseRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.activity.AssertExpectations(t)
}

func TestSpawnTask_UnknownType(t *testing.T) {
	router, _ := newTestRouter()
	c := &entity.CaseEntity{ID: "c5", OrgID: "org-1"}

	res, err := router.SpawnTask(context.Background(), entity.Session{OrgID: "org-1"}, c, entity.TaskDrawing)

	assert.Nil(t, res)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
}
