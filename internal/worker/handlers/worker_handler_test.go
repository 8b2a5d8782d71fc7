package worker_handler

import (
	"context"
	"testing"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var workerNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type workerMocks struct {
	tasks         *MockTaskStore
	users         *MockUserFinder
	notifications *MockNotificationFinder
	notifier      *use_cases.MockNotificationEmitter
	txManager     *MockTxManager
	tx            *MockTx
	mailer        *MockMailer
}

func newTestWorkerHandler() (*WorkerHandler, *workerMocks) {
	m := &workerMocks{
		tasks:         new(MockTaskStore),
		users:         new(MockUserFinder),
		notifications: new(MockNotificationFinder),
		notifier:      new(use_cases.MockNotificationEmitter),
		txManager:     new(MockTxManager),
		tx:            new(MockTx),
		mailer:        new(MockMailer),
	}
	wh := &WorkerHandler{
		tasks:         m.tasks,
		users:         m.users,
		notifications: m.notifications,
		notifier:      m.notifier,
		txManager:     m.txManager,
		mailer:        m.mailer,
		now:           func() time.Time { return workerNow },
	}
	return wh, m
}

func task(t *testing.T, typ string, payload any) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(typ, raw)
}

func strPtr(s string) *string { return &s }

// Test 1: E-Mail nur an aktive Benutzer mit eingeschalteten E-Mails
func TestSendNotificationEmail_RespectsPreference(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	n := &entity.NotificationEntity{ID: "n-1", UserID: "u-1", Title: "New task"}
	m.notifications.On("FindByID", ctx, "n-1").Return(n, (*app_errors.AppError)(nil))
	m.users.On("FindByUserID", ctx, "u-1").Return(&entity.UserEntity{ID: "u-1", Email: "u1@fitout.test", IsActive: true, EmailNotifications: false}, (*app_errors.AppError)(nil))

	err := wh.SendNotificationEmail()(ctx, task(t, worker_task.TaskSendNotificationEmail, worker_task.SendNotificationEmailPayload{NotificationID: "n-1", UserID: "u-1"}))

	require.NoError(t, err)
	m.mailer.AssertNotCalled(t, "SendNotificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Test 2: E-Mail wird verschickt
func TestSendNotificationEmail_Sends(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	n := &entity.NotificationEntity{ID: "n-1", UserID: "u-1", Title: "New task"}
	m.notifications.On("FindByID", ctx, "n-1").Return(n, (*app_errors.AppError)(nil))
	m.users.On("FindByUserID", ctx, "u-1").Return(&entity.UserEntity{ID: "u-1", Name: "Uma", Email: "u1@fitout.test", IsActive: true, EmailNotifications: true}, (*app_errors.AppError)(nil))
	m.mailer.On("SendNotificationEmail", ctx, "u1@fitout.test", "Uma", n).Return(nil)

	err := wh.SendNotificationEmail()(ctx, task(t, worker_task.TaskSendNotificationEmail, worker_task.SendNotificationEmailPayload{NotificationID: "n-1", UserID: "u-1"}))

	require.NoError(t, err)
	m.mailer.AssertExpectations(t)
}

// Test 3: gelöschte Benachrichtigung wird ohne Retry übersprungen
func TestSendNotificationEmail_NotFound(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	m.notifications.On("FindByID", ctx, "n-1").Return((*entity.NotificationEntity)(nil), app_errors.NewNotFoundError("notification_not_found"))

	err := wh.SendNotificationEmail()(ctx, task(t, worker_task.TaskSendNotificationEmail, worker_task.SendNotificationEmailPayload{NotificationID: "n-1", UserID: "u-1"}))

	require.NoError(t, err)
	m.users.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

// Test 4: Erinnerung vor Fristablauf
func TestDeadlineReminder_Emits(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	deadline := workerNow.Add(2 * time.Hour)
	m.tasks.On("FindByID", ctx, "org-1", "t-1").Return(&entity.CaseTaskEntity{
		ID: "t-1", Type: entity.TaskSiteVisit, Status: entity.TaskPending, AssignedTo: strPtr("u-7"), Deadline: &deadline,
	}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", mock.MatchedBy(func(n emitter.Notification) bool {
		return n.UserID == "u-7" && n.EntityID == "t-1" && n.Type == entity.NotificationWarning
	})).Return(&entity.NotificationEntity{ID: "n-1"}, (*app_errors.AppError)(nil))
	m.tasks.On("BatchMarkReminded", ctx, nil, []string{"t-1"}, workerNow).Return((*app_errors.AppError)(nil))

	err := wh.DeadlineReminder()(ctx, task(t, worker_task.TaskCaseTaskDeadlineReminder, worker_task.CaseTaskDeadlineReminderPayload{TaskID: "t-1", OrgID: "org-1", Deadline: deadline}))

	require.NoError(t, err)
	m.notifier.AssertExpectations(t)
	m.tasks.AssertExpectations(t)
}

// Test 5: verschobene Frist macht die alte Erinnerung hinfällig
func TestDeadlineReminder_StaleDeadline(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	moved := workerNow.Add(48 * time.Hour)
	m.tasks.On("FindByID", ctx, "org-1", "t-1").Return(&entity.CaseTaskEntity{
		ID: "t-1", Status: entity.TaskStarted, AssignedTo: strPtr("u-7"), Deadline: &moved,
	}, (*app_errors.AppError)(nil))

	err := wh.DeadlineReminder()(ctx, task(t, worker_task.TaskCaseTaskDeadlineReminder, worker_task.CaseTaskDeadlineReminderPayload{TaskID: "t-1", OrgID: "org-1", Deadline: workerNow.Add(2 * time.Hour)}))

	require.NoError(t, err)
	m.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything)
}

// Test 6: Sweep markiert nur erfolgreich angemahnte Tasks
func TestOverdueSweep_MarksOnlyNotified(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	m.tasks.On("ListOverdue", ctx, workerNow, overdueRemindEvery).Return([]entity.OverdueTask{
		{ID: "t-1", OrgID: "org-1", AssignedTo: "u-1", Type: entity.TaskDrawing, ClientName: "Acme", Deadline: workerNow.Add(-time.Hour)},
		{ID: "t-2", OrgID: "org-1", AssignedTo: "u-2", Type: entity.TaskBOQ, ClientName: "Beta", Deadline: workerNow.Add(-time.Hour)},
	}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", mock.MatchedBy(func(n emitter.Notification) bool { return n.UserID == "u-1" })).
		Return(&entity.NotificationEntity{ID: "n-1"}, (*app_errors.AppError)(nil))
	m.notifier.On("Emit", ctx, "org-1", mock.MatchedBy(func(n emitter.Notification) bool { return n.UserID == "u-2" })).
		Return((*entity.NotificationEntity)(nil), app_errors.NewInternalError(assert.AnError))
	m.txManager.On("Begin", ctx).Return(m.tx, (*app_errors.AppError)(nil))
	m.tx.On("Rollback", ctx).Return((*app_errors.AppError)(nil))
	m.tx.On("Commit", ctx).Return((*app_errors.AppError)(nil))
	m.tasks.On("BatchMarkReminded", ctx, m.tx, []string{"t-1"}, workerNow).Return((*app_errors.AppError)(nil))

	err := wh.OverdueSweep()(ctx, asynq.NewTask(worker_task.TaskOverdueCaseTasks, nil))

	require.NoError(t, err)
	m.tasks.AssertExpectations(t)
	m.tx.AssertCalled(t, "Commit", ctx)
}

// Test 7: nichts überfällig, keine Transaktion
func TestOverdueSweep_Nothing(t *testing.T) {
	ctx := context.Background()
	wh, m := newTestWorkerHandler()

	m.tasks.On("ListOverdue", ctx, workerNow, overdueRemindEvery).Return([]entity.OverdueTask{}, (*app_errors.AppError)(nil))

	err := wh.OverdueSweep()(ctx, asynq.NewTask(worker_task.TaskOverdueCaseTasks, nil))

	require.NoError(t, err)
	m.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}
