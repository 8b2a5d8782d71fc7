package user_case

import (
	"context"
	"testing"

	user_dto "github.com/Xenn-00/fitout-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	use_cases "github.com/Xenn-00/fitout-meister/internal/use-cases"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var self = entity.Session{UserID: "u-1", OrgID: "org-1", Name: "Uma", Role: entity.RoleDrawingTeam}

func newTestUserService() (*UserService, *MockUserRepo, *use_cases.MockCache) {
	repo := new(MockUserRepo)
	c := use_cases.NewMockCache()
	return &UserService{cache: c, repo: repo}, repo, c
}

// Test 1: zweites Laden des eigenen Profils kommt aus dem Cache
func TestUserSelfProfile_Cached(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestUserService()

	repo.On("FindByUserID", ctx, "u-1").Return(&entity.UserEntity{ID: "u-1", OrgID: "org-1", Name: "Uma", Role: entity.RoleDrawingTeam}, (*app_errors.AppError)(nil)).Once()

	first, err := service.UserSelfProfile(ctx, self)
	require.Nil(t, err)
	second, err := service.UserSelfProfile(ctx, self)
	require.Nil(t, err)

	assert.Equal(t, first.Name, second.Name)
	repo.AssertNumberOfCalls(t, "FindByUserID", 1)
}

// Test 2: Benutzer anderer Organisationen sind unsichtbar
func TestUserProfileById_OtherOrg(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestUserService()

	repo.On("FindByUserID", ctx, "u-2").Return(&entity.UserEntity{ID: "u-2", OrgID: "org-2"}, (*app_errors.AppError)(nil))

	_, err := service.UserProfileById(ctx, self, user_dto.ParamGetUserByID{ID: "u-2"})

	require.NotNil(t, err)
	assert.Equal(t, fiber.StatusNotFound, err.Code)
}

// Test 3: Profiländerung leert Profil-, Sitzungs- und Verzeichnis-Cache
func TestUpdateSelfProfile_InvalidatesCaches(t *testing.T) {
	ctx := context.Background()
	service, repo, c := newTestUserService()

	c.Data[utils.DirectoryCacheKey("org-1")] = []byte(`[]`)
	c.Data[utils.UserCacheKey("u-1")] = []byte(`{}`)
	c.Data[profileCacheKey("u-1")] = []byte(`{}`)

	off := false
	repo.On("UpdateProfile", ctx, "u-1", mock.MatchedBy(func(m entity.UserUpdate) bool {
		return m.Name != nil && *m.Name == "Uma K." && m.EmailNotifications != nil && !*m.EmailNotifications
	})).Return(&entity.UserEntity{ID: "u-1", OrgID: "org-1", Name: "Uma K."}, (*app_errors.AppError)(nil))

	name := "  Uma K. "
	resp, err := service.UpdateSelfProfile(ctx, self, user_dto.UpdateSelfProfileRequest{Name: &name, EmailNotifications: &off})

	require.Nil(t, err)
	assert.Equal(t, "Uma K.", resp.Name)
	assert.Empty(t, c.Data)
	assert.Equal(t, 3, c.DelCalled)
}

// Test 4: leere Änderung
func TestUpdateSelfProfile_Empty(t *testing.T) {
	service, repo, _ := newTestUserService()

	_, err := service.UpdateSelfProfile(context.Background(), self, user_dto.UpdateSelfProfileRequest{})

	require.NotNil(t, err)
	assert.Equal(t, "request.invalid_body", err.MessageKey)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

// Test 5: Verzeichnis nach Rolle gefiltert
func TestDirectory_RoleFilter(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newTestUserService()

	repo.On("ListByOrg", ctx, "org-1").Return([]entity.UserEntity{
		{ID: "u-1", Name: "Uma", Role: entity.RoleDrawingTeam, IsActive: true},
		{ID: "u-2", Name: "Eva", Role: entity.RoleSiteEngineer, IsActive: true},
	}, (*app_errors.AppError)(nil))

	role := string(entity.RoleSiteEngineer)
	list, err := service.Directory(ctx, self, user_dto.DirectoryFilter{Role: &role})

	require.Nil(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u-2", list[0].ID)
}
