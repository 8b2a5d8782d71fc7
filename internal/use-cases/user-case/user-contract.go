package user_case

import (
	"context"

	user_dto "github.com/Xenn-00/fitout-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type UserServiceContract interface {
	UserSelfProfile(ctx context.Context, session entity.Session) (*user_dto.UserProfileResponse, *app_errors.AppError)
	UserProfileById(ctx context.Context, session entity.Session, req user_dto.ParamGetUserByID) (*user_dto.UserProfileResponse, *app_errors.AppError)
	UpdateSelfProfile(ctx context.Context, session entity.Session, req user_dto.UpdateSelfProfileRequest) (*user_dto.UserProfileResponse, *app_errors.AppError)
	Directory(ctx context.Context, session entity.Session, filter user_dto.DirectoryFilter) ([]user_dto.DirectoryEntry, *app_errors.AppError)
}
