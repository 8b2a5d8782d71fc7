package approval_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApprovalRepo struct {
	db *pgxpool.Pool
}

func NewApprovalRepo(db *pgxpool.Pool) ApprovalRepoContract {
	return &ApprovalRepo{
		db: db,
	}
}

const approvalColumns = `id, org_id, request_type, requester_id, requester_name, requester_role, target_role, case_id,
	status, priority, description, reviewer_id, reviewer_name, reviewer_comments, reviewed_at, assignee_id, end_date,
	created_at, updated_at`

func scanApproval(row pgx.Row) (*entity.ApprovalRequestEntity, error) {
	var a entity.ApprovalRequestEntity
	if err := row.Scan(
		&a.ID, &a.OrgID, &a.RequestType, &a.RequesterID, &a.RequesterName, &a.RequesterRole, &a.TargetRole, &a.CaseID,
		&a.Status, &a.Priority, &a.Description, &a.ReviewerID, &a.ReviewerName, &a.ReviewerComments, &a.ReviewedAt,
		&a.AssigneeID, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApprovalRepo) Create(ctx context.Context, req *entity.ApprovalRequestEntity) *app_errors.AppError {
	query := `
		INSERT INTO approval_requests (
			id, org_id, request_type, requester_id, requester_name, requester_role, target_role, case_id,
			status, priority, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.OrgID, req.RequestType, req.RequesterID, req.RequesterName, req.RequesterRole, req.TargetRole,
		req.CaseID, req.Status, req.Priority, req.Description, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *ApprovalRepo) FindByID(ctx context.Context, orgID, id string) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1 AND org_id = $2`

	a, err := scanApproval(r.db.QueryRow(ctx, query, id, orgID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "approval_not_found")
	}
	return a, nil
}

func (r *ApprovalRepo) List(ctx context.Context, orgID string, filter entity.ApprovalFilter) ([]entity.ApprovalRequestEntity, *app_errors.AppError) {
	where := []string{"org_id = $1"}
	args := []any{orgID}
	argPos := 2

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.RequestType != nil {
		where = append(where, fmt.Sprintf("request_type = $%d", argPos))
		args = append(args, *filter.RequestType)
		argPos++
	}
	if filter.RequesterID != nil {
		where = append(where, fmt.Sprintf("requester_id = $%d", argPos))
		args = append(args, *filter.RequesterID)
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM approval_requests WHERE %s ORDER BY created_at DESC`,
		approvalColumns, strings.Join(where, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.ApprovalRequestEntity{}
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}

// Decide schreibt die Entscheidung nur, wenn der Antrag noch im erwarteten Status ist.
// Sonst 409, damit zwei Prüfer sich nicht gegenseitig überschreiben.
func (r *ApprovalRepo) Decide(ctx context.Context, orgID, id string, expected entity.ApprovalStatus, d entity.ApprovalDecision) (*entity.ApprovalRequestEntity, *app_errors.AppError) {
	query := `
		UPDATE approval_requests
		SET status = $1, reviewer_id = $2, reviewer_name = $3, reviewer_comments = $4, reviewed_at = $5,
			assignee_id = $6, end_date = $7, updated_at = $5
		WHERE id = $8 AND org_id = $9 AND status = $10
		RETURNING ` + approvalColumns

	a, err := scanApproval(r.db.QueryRow(ctx, query,
		d.Status, d.ReviewerID, d.ReviewerName, d.Comments, d.ReviewedAt, d.AssigneeID, d.EndDate,
		id, orgID, expected,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, app_errors.NewConflictError("approval.already_decided", nil)
	}
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return a, nil
}
