package stream_handlers

import (
	"bufio"
	"context"
	"fmt"
	"time"

	approval_dto "github.com/Xenn-00/fitout-meister/internal/dtos/approval-dto"
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	notification_dto "github.com/Xenn-00/fitout-meister/internal/dtos/notification-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/Xenn-00/fitout-meister/internal/handlers"
	"github.com/Xenn-00/fitout-meister/internal/queue"
	approval_case "github.com/Xenn-00/fitout-meister/internal/use-cases/approval-case"
	case_case "github.com/Xenn-00/fitout-meister/internal/use-cases/case-case"
	finance_case "github.com/Xenn-00/fitout-meister/internal/use-cases/finance-case"
	notification_case "github.com/Xenn-00/fitout-meister/internal/use-cases/notification-case"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const (
	heartbeatInterval = 15 * time.Second
	snapshotLimit     = 100
)

type ParamCollection struct {
	Collection string `params:"collection" validate:"required,oneof=cases approvalRequests notifications costCenters"`
}

// StreamHandler schickt Snapshots einer Collection als Server-Sent Events.
type StreamHandler struct {
	subscriber    feed.Subscriber
	cases         case_case.CaseServiceContract
	approvals     approval_case.ApprovalServiceContract
	notifications notification_case.NotificationServiceContract
	finance       finance_case.FinanceServiceContract
}

func NewStreamHandler(db *pgxpool.Pool, redis *redis.Client, f *feed.RedisFeed, taskQueue queue.TaskQueueClient, strictBalance bool) *StreamHandler {
	return &StreamHandler{
		subscriber:    f,
		cases:         case_case.NewCaseService(db, f, taskQueue),
		approvals:     approval_case.NewApprovalService(db, redis, f, taskQueue),
		notifications: notification_case.NewNotificationService(db, f),
		finance:       finance_case.NewFinanceService(db, f, strictBalance),
	}
}

// loader liefert den Snapshot-Lader für die Sitzung. Der Lader sieht dasselbe wie die List-Endpunkte.
func (h *StreamHandler) loader(session entity.Session, c feed.Collection) feed.Loader[any] {
	switch c {
	case feed.Cases:
		return func(ctx context.Context) ([]any, error) {
			list, err := h.cases.ListCases(ctx, session, case_dto.CaseListFilter{Limit: snapshotLimit, Page: 1})
			if err != nil {
				return nil, err
			}
			return asAny(list), nil
		}
	case feed.ApprovalRequests:
		return func(ctx context.Context) ([]any, error) {
			list, err := h.approvals.List(ctx, session, approval_dto.ApprovalListFilter{Limit: snapshotLimit, Page: 1})
			if err != nil {
				return nil, err
			}
			return asAny(list), nil
		}
	case feed.Notifications:
		return func(ctx context.Context) ([]any, error) {
			list, err := h.notifications.ListMine(ctx, session, notification_dto.NotificationListFilter{Limit: snapshotLimit, Page: 1})
			if err != nil {
				return nil, err
			}
			return asAny(list), nil
		}
	default:
		return func(ctx context.Context) ([]any, error) {
			list, err := h.finance.ListCostCenters(ctx, session)
			if err != nil {
				return nil, err
			}
			return asAny(list), nil
		}
	}
}

func asAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	session, err := handlers.GetSession(c)
	if err != nil {
		return err
	}

	var param ParamCollection
	if err := handlers.ParseParams(c, handlers.NewValidator(), &param); err != nil {
		return err
	}
	collection := feed.Collection(param.Collection)
	load := h.loader(session, collection)

	// Rechte prüfen, solange noch eine JSON-Fehlerantwort möglich ist
	if _, lerr := load(c.Context()); lerr != nil {
		return lerr
	}

	ctx, cancel := context.WithCancel(context.Background())
	snapshots, serr := feed.Stream(ctx, h.subscriber, session.OrgID, collection, load)
	if serr != nil {
		cancel()
		return app_errors.NewInternalError(serr)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	logger := log.With().Str("org_id", session.OrgID).Str("user_id", session.UserID).Str("collection", string(collection)).Logger()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		logger.Debug().Msg("Stream geöffnet")

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				payload, err := json.Marshal(snapshot)
				if err != nil {
					logger.Error().Err(err).Msg("Snapshot konnte nicht serialisiert werden")
					continue
				}
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}

			// Flush schlägt fehl, sobald der Client weg ist
			if err := w.Flush(); err != nil {
				logger.Debug().Err(err).Msg("Stream geschlossen")
				return
			}
		}
	}))

	return nil
}
