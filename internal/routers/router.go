package routers

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/config"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/i18n"
	"github.com/Xenn-00/fitout-meister/internal/middleware"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	user_repo "github.com/Xenn-00/fitout-meister/internal/repo/user-repo"
	"github.com/Xenn-00/fitout-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redis_fiber "github.com/gofiber/storage/redis/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Deps bündelt die geteilten Ressourcen, die jeder Router braucht.
type Deps struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	I18n      *i18n.I18nService
	Paseto    *utils.PasetoMaker
	Config    *config.AppConfig
	Feed      *feed.RedisFeed
	TaskQueue queue.TaskQueueClient
}

// SetupRoutes richtet die API-Routen ein.
func SetupRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api/v1")
	auth := middleware.AuthMiddleware(deps.Paseto, deps.Redis, user_repo.NewUserRepo(deps.DB))

	CaseRouter(api, deps, auth)
	TaskRouter(api, deps, auth)
	QuotationRouter(api, deps, auth)
	ApprovalRouter(api, deps, auth)
	FinanceRouter(api, deps, auth)
	NotificationRouter(api, deps, auth)
	UserRouter(api, deps, auth)
	StreamRouter(api, deps, auth)
	HealthRouter(api, deps.DB, deps.Redis)
}

// limiterStorage legt den Zustand des Rate-Limiters in Redis DB 1 ab, getrennt vom Cache.
func limiterStorage(rdb *redis.Client) fiber.Storage {
	host, portStr, err := net.SplitHostPort(rdb.Options().Addr)
	if err != nil {
		host, portStr = rdb.Options().Addr, "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	return redis_fiber.New(redis_fiber.Config{
		Host:     host,
		Password: rdb.Options().Password,
		Port:     port,
		Database: 1,
	})
}

// userLimiter begrenzt einen Endpunkt pro Benutzer, ohne Sitzung pro IP.
func userLimiter(storage fiber.Storage, prefix string, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			userID := c.Locals("user_id")
			if userID == nil {
				return prefix + ":ip:" + c.IP() // fallback to ip
			}
			return fmt.Sprintf("%s:%v", prefix, userID)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error",
				"error":  "too_many_request",
			})
		},
		Storage: storage,
	})
}
