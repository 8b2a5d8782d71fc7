package user_case

import (
	"context"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/cache"
	user_dto "github.com/Xenn-00/fitout-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const profileCacheTTL = 15 * time.Minute

func profileCacheKey(userID string) string {
	return "user_profile:" + userID
}

type UserService struct {
	cache cache.Cache
	repo  user_repo.UserRepoContract
}

func NewUserService(db *pgxpool.Pool, redis *redis.Client) UserServiceContract {
	return &UserService{
		cache: cache.NewRedisCache(redis),
		repo:  user_repo.NewUserRepo(db),
	}
}

func (s *UserService) UserSelfProfile(ctx context.Context, session entity.Session) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	// Redis dient nur als Cache, NICHT als Source of Truth
	key := profileCacheKey(session.UserID)
	var cached user_dto.UserProfileResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	// Bei Cache-Fehlern wird bewusst fortgefahren (Fallback auf DB)
	user, err := s.repo.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	resp := user_dto.ToUserProfileResponse(user)
	if err := s.cache.Set(ctx, key, resp, profileCacheTTL); err != nil {
		log.Warn().Err(err.Err).Msg("Fehler beim Einstellen der Redis-Cache")
	}
	return resp, nil
}

// UserProfileById zeigt Kollegen derselben Organisation. E-Mail-Einstellungen sieht nur die Verwaltung.
func (s *UserService) UserProfileById(ctx context.Context, session entity.Session, req user_dto.ParamGetUserByID) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	user, err := s.repo.FindByUserID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if user.OrgID != session.OrgID {
		return nil, app_errors.NewNotFoundError("user_not_found")
	}

	resp := user_dto.ToUserProfileResponse(user)
	if !session.HasRole(entity.RoleAdmin, entity.RoleManager, entity.RoleHR) && user.ID != session.UserID {
		resp.EmailNotifications = false
		resp.CreatedAt = time.Time{}
		resp.UpdatedAt = time.Time{}
	}
	return resp, nil
}

func (s *UserService) UpdateSelfProfile(ctx context.Context, session entity.Session, req user_dto.UpdateSelfProfileRequest) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	model := entity.UserUpdate{EmailNotifications: req.EmailNotifications}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, app_errors.NewFieldValidationError("name", "required", "validation.required")
		}
		model.Name = &name
	}
	if model.Name == nil && model.EmailNotifications == nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", nil)
	}

	user, err := s.repo.UpdateProfile(ctx, session.UserID, model)
	if err != nil {
		return nil, err
	}

	// Profil, Sitzungs-Cache und Verzeichnis sind nach der Änderung veraltet
	for _, key := range []string{profileCacheKey(user.ID), utils.UserCacheKey(user.ID), utils.DirectoryCacheKey(user.OrgID)} {
		if err := s.cache.Del(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Fehler beim Löschen der Cache")
		}
	}

	return user_dto.ToUserProfileResponse(user), nil
}

// Directory listet die Kollegen der Organisation, optional nach Rolle gefiltert.
func (s *UserService) Directory(ctx context.Context, session entity.Session, filter user_dto.DirectoryFilter) ([]user_dto.DirectoryEntry, *app_errors.AppError) {
	key := utils.DirectoryCacheKey(session.OrgID)

	var users []entity.UserEntity
	hit, cerr := s.cache.Get(ctx, key, &users)
	if cerr != nil {
		log.Warn().Err(cerr.Err).Str("key", key).Msg("Verzeichnis-Cache nicht lesbar")
	}
	if !hit {
		list, err := s.repo.ListByOrg(ctx, session.OrgID)
		if err != nil {
			return nil, err
		}
		users = list
		if err := s.cache.Set(ctx, key, users, utils.DirectoryCacheTTL); err != nil {
			log.Warn().Err(err.Err).Str("key", key).Msg("Verzeichnis-Cache nicht schreibbar")
		}
	}

	out := make([]user_dto.DirectoryEntry, 0, len(users))
	for _, u := range users {
		if filter.Role != nil && string(u.Role) != *filter.Role {
			continue
		}
		out = append(out, user_dto.DirectoryEntry{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			IsActive: u.IsActive,
		})
	}
	return out, nil
}
