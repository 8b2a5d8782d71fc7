package emitter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Xenn-00/fitout-meister/internal/emitter"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEmit_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepo)
	pub := new(use_cases.MockPublisher)
	q := new(use_cases.MockTaskQueue)

	repo.On("Create", ctx, mock.MatchedBy(func(n *entity.NotificationEntity) bool {
		return n.UserID == "user-1" && n.Type == entity.NotificationInfo && !n.IsRead && n.ID != ""
	})).Return((*app_errors.AppError)(nil))
	pub.On("Publish", ctx, "org-1", feed.Notifications).Return(nil)
	q.On("EnqueueSendNotificationEmail", mock.MatchedBy(func(p *worker_task.SendNotificationEmailPayload) bool {
		return p.UserID == "user-1"
	})).Return(nil)

	e := emitter.NewNotificationEmitter(repo, pub, q)
	n, err := e.Emit(ctx, "org-1", emitter.Notification{UserID: "user-1", Title: "New task", EntityType: entity.EntityTask, EntityID: "t-1"})

	assert.Nil(t, err)
	assert.Equal(t, "New task", n.Title)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
	q.AssertExpectations(t)
}

func TestEmit_QueueAndFeedFailuresAreNotReturned(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepo)
	pub := new(use_cases.MockPublisher)
	q := new(use_cases.MockTaskQueue)

	repo.On("Create", ctx, mock.Anything).Return((*app_errors.AppError)(nil))
	pub.On("Publish", ctx, "org-1", feed.Notifications).Return(errors.New("redis down"))
	q.On("EnqueueSendNotificationEmail", mock.Anything).Return(errors.New("redis down"))

	e := emitter.NewNotificationEmitter(repo, pub, q)
	n, err := e.Emit(ctx, "org-1", emitter.Notification{UserID: "user-1", Title: "x", Type: entity.NotificationWarning})

	assert.Nil(t, err)
	assert.Equal(t, entity.NotificationWarning, n.Type)
}

func TestEmit_StoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepo)
	pub := new(use_cases.MockPublisher)
	q := new(use_cases.MockTaskQueue)

	repo.On("Create", ctx, mock.Anything).Return(app_errors.NewInternalError(errors.New("insert failed")))

	e := emitter.NewNotificationEmitter(repo, pub, q)
	n, err := e.Emit(ctx, "org-1", emitter.Notification{UserID: "user-1"})

	assert.Nil(t, n)
	assert.Equal(t, 500, err.Code)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	q.AssertNotCalled(t, "EnqueueSendNotificationEmail", mock.Anything)
}

func TestEmit_RequiresRecipient(t *testing.T) {
	e := emitter.NewNotificationEmitter(new(MockNotificationRepo), new(use_cases.MockPublisher), new(use_cases.MockTaskQueue))

	_, err := e.Emit(context.Background(), "org-1", emitter.Notification{Title: "nobody"})
	assert.Equal(t, app_errors.ErrValidation, err.Type)
}

func TestActivityLogger_Log(t *testing.T) {
	ctx := context.Background()
	repo := new(MockActivityRepo)
	from, to := entity.CaseSiteVisit, entity.CaseDrawing

	repo.On("Append", ctx, mock.MatchedBy(func(a *entity.CaseActivityEntity) bool {
		return a.CaseID == "c-1" && a.ActorID == "u-1" && a.ActorName == "Ana" &&
			*a.FromStatus == entity.CaseSiteVisit && *a.ToStatus == entity.CaseDrawing
	})).Return((*app_errors.AppError)(nil))

	l := emitter.NewActivityLogger(repo)
	err := l.Log(ctx, entity.Session{UserID: "u-1", Name: "Ana"}, emitter.Activity{
		CaseID: "c-1", Action: entity.ActivityStatusChanged, FromStatus: &from, ToStatus: &to,
	})

	assert.Nil(t, err)
	repo.AssertExpectations(t)
}
