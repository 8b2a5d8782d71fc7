package activity_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepo(db *pgxpool.Pool) ActivityRepoContract {
	return &ActivityRepo{
		db: db,
	}
}

func (r *ActivityRepo) Append(ctx context.Context, a *entity.CaseActivityEntity) *app_errors.AppError {
	query := `
		INSERT INTO case_activities (id, case_id, actor_id, actor_name, action, from_status, to_status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query, a.ID, a.CaseID, a.ActorID, a.ActorName, a.Action, a.FromStatus, a.ToStatus, a.Message, a.CreatedAt)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *ActivityRepo) ListByCase(ctx context.Context, caseID string, limit, offset int) ([]entity.CaseActivityEntity, *app_errors.AppError) {
	query := `
		SELECT id, case_id, actor_id, actor_name, action, from_status, to_status, message, created_at
		FROM case_activities
		WHERE case_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, caseID, limit, offset)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.CaseActivityEntity{}
	for rows.Next() {
		var a entity.CaseActivityEntity
		if err := rows.Scan(&a.ID, &a.CaseID, &a.ActorID, &a.ActorName, &a.Action, &a.FromStatus, &a.ToStatus, &a.Message, &a.CreatedAt); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}
