package middleware

import (
	"strings"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionKey ist der Locals-Schlüssel für die entity.Session des Aufrufers.
const SessionKey = "session"

func unauthorized(err error) *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", err)
}

// AuthMiddleware validiert das Authorization-Header ("Bearer <token>") und verifiziert das PASETO-Token.
// Rolle und Name kommen aus der users-Zeile (zehn Minuten in Redis), nicht aus dem Token.
// Bei Erfolg liegen "session" und "user_id" in c.Locals.
func AuthMiddleware(pasetoMaker *utils.PasetoMaker, redis *redis.Client, users user_repo.UserRepoContract) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(nil)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(nil)
		}

		// Verifizieren via PASETO
		claims, err := pasetoMaker.VerifyToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("Token konnte nicht verifiziert werden")
			return unauthorized(nil)
		}

		key := utils.UserCacheKey(claims.UserID)
		user, cacheErr := utils.GetCacheData[entity.UserEntity](c.Context(), redis, key)
		if cacheErr != nil {
			log.Warn().Err(cacheErr.Err).Str("key", key).Msg("Benutzer-Cache nicht lesbar")
		}
		if user == nil {
			found, appErr := users.FindByUserID(c.Context(), claims.UserID)
			if appErr != nil {
				if appErr.Code == fiber.StatusNotFound {
					return unauthorized(nil)
				}
				return appErr
			}
			user = found
			if setErr := utils.SetCacheData(c.Context(), redis, key, user, utils.UserCacheTTL); setErr != nil {
				log.Warn().Err(setErr.Err).Str("key", key).Msg("Benutzer-Cache nicht schreibbar")
			}
		}

		if !user.IsActive {
			return app_errors.NewForbiddenError("auth.user_inactive")
		}
		if claims.OrgID != "" && claims.OrgID != user.OrgID {
			return unauthorized(nil)
		}

		// Speichern zu kontext, sodass Handler es nutzen kann
		c.Locals(SessionKey, entity.SessionFromUser(user))
		c.Locals("user_id", user.ID)

		return c.Next()
	}
}
