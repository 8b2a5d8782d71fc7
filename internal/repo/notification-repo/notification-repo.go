package notification_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepo(db *pgxpool.Pool) NotificationRepoContract {
	return &NotificationRepo{
		db: db,
	}
}

const notificationColumns = `id, title, message, user_id, entity_type, entity_id, type, is_read, created_at`

func scanNotification(row pgx.Row) (*entity.NotificationEntity, error) {
	var n entity.NotificationEntity
	if err := row.Scan(&n.ID, &n.Title, &n.Message, &n.UserID, &n.EntityType, &n.EntityID, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.NotificationEntity) *app_errors.AppError {
	query := `
		INSERT INTO notifications (id, title, message, user_id, entity_type, entity_id, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query, n.ID, n.Title, n.Message, n.UserID, n.EntityType, n.EntityID, n.Type, n.IsRead, n.CreatedAt)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *NotificationRepo) FindByID(ctx context.Context, id string) (*entity.NotificationEntity, *app_errors.AppError) {
	n, err := scanNotification(r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "notification_not_found")
	}
	return n, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]entity.NotificationEntity, *app_errors.AppError) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.NotificationEntity{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, *app_errors.AppError) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, *app_errors.AppError) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected(), nil
}
