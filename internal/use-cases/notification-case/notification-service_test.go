package notification_case

import (
	"context"
	"testing"

	notification_dto "github.com/Xenn-00/fitout-meister/internal/dtos/notification-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var me = entity.Session{UserID: "u-1", OrgID: "org-1", Role: entity.RoleSiteEngineer}

func newTestNotificationService() (*NotificationService, *MockNotificationRepo, *use_cases.MockPublisher) {
	repo := new(MockNotificationRepo)
	pub := new(use_cases.MockPublisher)
	return &NotificationService{repo: repo, publisher: pub}, repo, pub
}

// Test 1: nur ungelesene, zweite Seite
func TestListMine_UnreadPaging(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestNotificationService()

	repo.On("ListByUser", ctx, "u-1", true, 30, 30).Return([]entity.NotificationEntity{{ID: "n-1"}}, (*app_errors.AppError)(nil))

	list, err := service.ListMine(ctx, me, notification_dto.NotificationListFilter{Unread: true, Page: 2})

	require.Nil(t, err)
	assert.Len(t, list, 1)
	repo.AssertExpectations(t)
}

// Test 2: fremde oder unbekannte Benachrichtigung
func TestMarkRead_NotFound(t *testing.T) {
	ctx := context.Background()
	service, repo, pub := newTestNotificationService()

	repo.On("MarkRead", ctx, "u-1", "n-9").Return(false, (*app_errors.AppError)(nil))

	err := service.MarkRead(ctx, me, "n-9")

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.Code)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

// Test 3: Markieren veröffentlicht den Feed
func TestMarkRead_Publishes(t *testing.T) {
	ctx := context.Background()
	service, repo, pub := newTestNotificationService()

	repo.On("MarkRead", ctx, "u-1", "n-1").Return(true, (*app_errors.AppError)(nil))
	pub.On("Publish", ctx, "org-1", feed.Notifications).Return(nil)

	require.Nil(t, service.MarkRead(ctx, me, "n-1"))
	pub.AssertExpectations(t)
}

// Test 4: nichts zu markieren, kein Feed-Event
func TestMarkAllRead_NothingUnread(t *testing.T) {
	ctx := context.Background()
	service, repo, pub := newTestNotificationService()

	repo.On("MarkAllRead", ctx, "u-1").Return(int64(0), (*app_errors.AppError)(nil))

	resp, err := service.MarkAllRead(ctx, me)

	require.Nil(t, err)
	assert.Equal(t, int64(0), resp.Updated)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
