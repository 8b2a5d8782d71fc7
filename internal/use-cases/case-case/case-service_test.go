package case_case

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type serviceMocks struct {
	repo         *MockCaseRepo
	taskRepo     *MockTaskRepo
	userRepo     *MockUserRepo
	activityRepo *MockActivityRepo
	txManager    *MockTxManager
	router       *MockTaskRouter
	activity     *use_cases.MockActivityLogger
	notifier     *use_cases.MockNotificationEmitter
	publisher    *use_cases.MockPublisher
	queue        *use_cases.MockTaskQueue
}

func newTestCaseService() (*CaseService, *serviceMocks) {
	m := &serviceMocks{
		repo:         new(MockCaseRepo),
		taskRepo:     new(MockTaskRepo),
		userRepo:     new(MockUserRepo),
		activityRepo: new(MockActivityRepo),
		txManager:    new(MockTxManager),
		router:       new(MockTaskRouter),
		activity:     new(use_cases.MockActivityLogger),
		notifier:     new(use_cases.MockNotificationEmitter),
		publisher:    new(use_cases.MockPublisher),
		queue:        new(use_cases.MockTaskQueue),
	}
	s := &CaseService{
		repo:         m.repo,
		taskRepo:     m.taskRepo,
		userRepo:     m.userRepo,
		activityRepo: m.activityRepo,
		txManager:    m.txManager,
		router:       m.router,
		activity:     m.activity,
		notifier:     m.notifier,
		publisher:    m.publisher,
		taskQueue:    m.queue,
		now:          func() time.Time { return serviceNow },
	}
	return s, m
}

func TestCreateCase_SalesTeamSelfAssigned(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()

	session := entity.Session{UserID: "sales-1", OrgID: "org-1", Role: entity.RoleSalesTeam}
	budget := decimal.NewFromInt(250000)
	req := &case_dto.CreateCaseRequest{
		ClientName: "  Acme Interiors ",
		Email:      "Info@Acme.com",
		Budget:     &budget,
	}

	m.repo.On("Create", ctx, nil, mock.MatchedBy(func(c *entity.CaseEntity) bool {
		return c.Status == entity.CaseNew && !c.IsProject && c.OrgID == "org-1" &&
			c.AssignedSales != nil && *c.AssignedSales == "sales-1" && c.Priority == entity.PriorityMedium
	})).Return((*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.MatchedBy(func(a emitter.Activity) bool {
		return a.Action == entity.ActivityCaseCreated
	})).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	view, err := service.CreateCase(ctx, session, req)

	assert.Nil(t, err)
	lead, ok := view.(entity.LeadView)
	require.True(t, ok)
	assert.Equal(t, "lead", lead.Kind)
	assert.Equal(t, "Acme Interiors", lead.ClientName)
	assert.Equal(t, "info@acme.com", lead.Email)
	assert.Equal(t, entity.LeadNotContacted, lead.PipelineStatus)
	assert.True(t, budget.Equal(lead.Value))
	m.repo.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestCreateCase_Forbidden(t *testing.T) {
	service, m := newTestCaseService()
	session := entity.Session{UserID: "d-1", OrgID: "org-1", Role: entity.RoleDrawingTeam}

	view, err := service.CreateCase(context.Background(), session, &case_dto.CreateCaseRequest{ClientName: "Acme"})

	assert.Nil(t, view)
	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCase_NegativeBudget(t *testing.T) {
	service, _ := newTestCaseService()
	session := entity.Session{UserID: "a-1", OrgID: "org-1", Role: entity.RoleAdmin}
	budget := decimal.NewFromInt(-1)

	_, err := service.CreateCase(context.Background(), session, &case_dto.CreateCaseRequest{ClientName: "Acme", Budget: &budget})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	assert.Equal(t, "budget", err.Details[0].Field)
}

func TestUpdateCase_TeamAssignmentNeedsManager(t *testing.T) {
	service, m := newTestCaseService()
	session := entity.Session{UserID: "sales-1", OrgID: "org-1", Role: entity.RoleSalesTeam}
	proc := "proc-1"

	_, err := service.UpdateCase(context.Background(), session, "c1", &case_dto.UpdateCaseRequest{AssignedProcurement: &proc})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusForbidden, err.Code)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCase_MergesTeam(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}

	updated := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseDrawing, AssignedTeam: map[entity.UserRole]string{entity.RoleDrawingTeam: "d-1"}}
	m.userRepo.On("FindByUserID", ctx, "d-1").Return(&entity.UserEntity{ID: "d-1", OrgID: "org-1", IsActive: true}, (*app_errors.AppError)(nil))
	m.repo.On("Update", ctx, "org-1", "c1", mock.MatchedBy(func(u entity.CaseUpdate) bool {
		return u.AssignedTeam[entity.RoleDrawingTeam] == "d-1"
	})).Return(updated, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	view, err := service.UpdateCase(ctx, session, "c1", &case_dto.UpdateCaseRequest{
		AssignedTeam: map[string]string{"DRAWING_TEAM": "d-1"},
	})

	assert.Nil(t, err)
	assert.Equal(t, "c1", view.CaseID())
	m.repo.AssertExpectations(t)
}

// Teammitglieder aus fremden Organisationen oder inaktive Nutzer werden abgelehnt
func TestUpdateCase_RejectsForeignTeamMember(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}

	m.userRepo.On("FindByUserID", ctx, "other-org-user").Return(&entity.UserEntity{ID: "other-org-user", OrgID: "org-2", IsActive: true}, (*app_errors.AppError)(nil))

	_, err := service.UpdateCase(ctx, session, "c1", &case_dto.UpdateCaseRequest{
		AssignedTeam: map[string]string{"DRAWING_TEAM": "other-org-user"},
	})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	assert.Equal(t, "assigned_team.DRAWING_TEAM", err.Details[0].Field)
	assert.Equal(t, "case.invalid_team_member", err.Details[0].MessageKey)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCase_RejectsUnknownProcurement(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	proc := "ghost-1"

	m.userRepo.On("FindByUserID", ctx, "ghost-1").Return((*entity.UserEntity)(nil), app_errors.NewNotFoundError("user.not_found"))

	_, err := service.UpdateCase(ctx, session, "c1", &case_dto.UpdateCaseRequest{AssignedProcurement: &proc})

	require.NotNil(t, err)
	assert.Equal(t, "assigned_procurement", err.Details[0].Field)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCase_RejectsInactiveSales(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "mgr-1", OrgID: "org-1", Role: entity.RoleManager}
	sales := "sales-9"

	m.userRepo.On("FindByUserID", ctx, "sales-9").Return(&entity.UserEntity{ID: "sales-9", OrgID: "org-1", IsActive: false}, (*app_errors.AppError)(nil))

	_, err := service.CreateCase(ctx, session, &case_dto.CreateCaseRequest{ClientName: "Acme", AssignedSales: &sales})

	require.NotNil(t, err)
	assert.Equal(t, "assigned_sales", err.Details[0].Field)
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatus_LeadLost(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "sm-1", OrgID: "org-1", Role: entity.RoleSalesManager}

	c := &entity.CaseEntity{ID: "c1", OrgID: "org-1", Status: entity.CaseQuotation}
	m.repo.On("FindByID", ctx, nil, "org-1", "c1").Return(c, (*app_errors.AppError)(nil))
	m.repo.On("TransitionStatus", ctx, nil, "org-1", "c1", entity.CaseQuotation, entity.CaseLost, false).Return(true, (*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	view, err := service.SetStatus(ctx, session, "c1", &case_dto.TransitionRequest{FromStatus: "QUOTATION", ToStatus: "LOST"})

	assert.Nil(t, err)
	lead := view.(entity.LeadView)
	assert.Equal(t, entity.CaseLost, lead.Status)
	assert.Equal(t, entity.LeadLost, lead.PipelineStatus)
	m.repo.AssertExpectations(t)
}

func TestSetStatus_RoutedPairRejected(t *testing.T) {
	service, m := newTestCaseService()
	session := entity.Session{UserID: "sm-1", OrgID: "org-1", Role: entity.RoleSalesManager}

	_, err := service.SetStatus(context.Background(), session, "c1", &case_dto.TransitionRequest{FromStatus: "SITE_VISIT", ToStatus: "DRAWING"})

	require.NotNil(t, err)
	assert.Equal(t, "case.use_transition", err.MessageKey)
	m.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatus_InvalidPair(t *testing.T) {
	service, _ := newTestCaseService()
	session := entity.Session{UserID: "sm-1", OrgID: "org-1", Role: entity.RoleSalesManager}

	_, err := service.SetStatus(context.Background(), session, "c1", &case_dto.TransitionRequest{FromStatus: "NEW", ToStatus: "COMPLETED"})

	require.NotNil(t, err)
	assert.Equal(t, "case.invalid_transition", err.MessageKey)
}

func TestTransitionCase_DelegatesToRouter(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "eng-1", OrgID: "org-1", Role: entity.RoleSiteEngineer}

	expected := &case_dto.RouteResult{Routed: true, CaseID: "c1"}
	m.router.On("RouteOnTransition", ctx, session, "c1", entity.CaseSiteVisit, entity.CaseDrawing).Return(expected, (*app_errors.AppError)(nil))

	res, err := service.TransitionCase(ctx, session, "c1", &case_dto.TransitionRequest{FromStatus: "SITE_VISIT", ToStatus: "DRAWING"})

	assert.Nil(t, err)
	assert.Same(t, expected, res)
}

func TestExportCSV_WritesHeaderAndRows(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "sm-1", OrgID: "org-1", Role: entity.RoleSalesManager}

	cases := []entity.CaseEntity{
		{ID: "c1", ClientName: "Doe, Jane", Status: entity.CaseNew, Priority: entity.PriorityLow},
		{ID: "c2", ClientName: "Acme", Status: entity.CaseBOQ, Priority: entity.PriorityHigh},
	}
	m.repo.On("List", ctx, "org-1", mock.MatchedBy(func(f entity.CaseFilter) bool {
		return f.Limit == exportLimit && f.Offset == 0
	})).Return(cases, (*app_errors.AppError)(nil))

	var buf bytes.Buffer
	err := service.ExportCSV(ctx, session, &buf, case_dto.CaseListFilter{})

	assert.Nil(t, err)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], `"Doe, Jane"`)
}

func TestImportLeads_Sheet(t *testing.T) {
	ctx := context.Background()
	service, m := newTestCaseService()
	session := entity.Session{UserID: "sales-1", OrgID: "org-1", Role: entity.RoleSalesTeam}

	data := []byte("Client Name,Email,Mobile,Value\njane doe,jane@example.com,+49 170 1234567,5000\n,missing@example.com,,\nbob ray,,0170 7654321,\n")

	tx := new(MockTx)
	m.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	m.repo.On("CreateMany", ctx, tx, mock.MatchedBy(func(cases []entity.CaseEntity) bool {
		if len(cases) != 2 {
			return false
		}
		for _, c := range cases {
			if c.Status != entity.CaseNew || c.Source != defaultImportSource || c.AssignedSales == nil || *c.AssignedSales != "sales-1" {
				return false
			}
		}
		return cases[0].ClientName == "Jane Doe" && cases[1].ClientName == "Bob Ray"
	})).Return(2, (*app_errors.AppError)(nil))
	tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))
	tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	m.activity.On("Log", ctx, session, mock.Anything).Return((*app_errors.AppError)(nil))
	m.publisher.On("Publish", ctx, "org-1", feed.Cases).Return(nil)

	resp, err := service.ImportLeads(ctx, session, data)

	assert.Nil(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "sheet", resp.Format)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 3, resp.Errors[0].Row)
	m.repo.AssertExpectations(t)
	tx.AssertExpectations(t)
	m.activity.AssertNumberOfCalls(t, "Log", 2)
}

func TestImportLeads_NoLeadsInText(t *testing.T) {
	service, m := newTestCaseService()
	session := entity.Session{UserID: "sales-1", OrgID: "org-1", Role: entity.RoleSalesTeam}

	resp, err := service.ImportLeads(context.Background(), session, []byte("meeting notes without contacts"))

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, "import.no_leads_found", err.MessageKey)
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}
