package user_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type UserRepoContract interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError)
	ListByOrg(ctx context.Context, orgID string) ([]entity.UserEntity, *app_errors.AppError)
	ListActiveByRoles(ctx context.Context, orgID string, roles []entity.UserRole) ([]entity.UserEntity, *app_errors.AppError)
	FirstActiveByRole(ctx context.Context, orgID string, role entity.UserRole) (*entity.UserEntity, *app_errors.AppError)
	UpdateProfile(ctx context.Context, userID string, model entity.UserUpdate) (*entity.UserEntity, *app_errors.AppError)
}
