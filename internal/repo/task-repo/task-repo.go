package task_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) TaskRepoContract {
	return &TaskRepo{
		db: db,
	}
}

const taskColumns = `t.id, t.case_id, t.type, t.assigned_role, t.assigned_to, t.assigned_by, t.status, t.priority,
	t.deadline, t.notes, t.created_at, t.started_at, t.completed_at, t.last_reminder_at`

func scanTask(row pgx.Row) (*entity.CaseTaskEntity, error) {
	var t entity.CaseTaskEntity
	if err := row.Scan(
		&t.ID, &t.CaseID, &t.Type, &t.AssignedRole, &t.AssignedTo, &t.AssignedBy, &t.Status, &t.Priority,
		&t.Deadline, &t.Notes, &t.CreatedAt, &t.StartedAt, &t.CompletedAt, &t.LastReminderAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) Create(ctx context.Context, t tx.Tx, task *entity.CaseTaskEntity) *app_errors.AppError {
	query := `
		INSERT INTO case_tasks (
			id, case_id, type, assigned_role, assigned_to, assigned_by, status, priority, deadline, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := tx.Use(r.db, t).Exec(ctx, query,
		task.ID, task.CaseID, task.Type, task.AssignedRole, task.AssignedTo, task.AssignedBy,
		task.Status, task.Priority, task.Deadline, task.Notes, task.CreatedAt,
	)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *TaskRepo) FindByID(ctx context.Context, orgID, taskID string) (*entity.CaseTaskEntity, *app_errors.AppError) {
	query := `
		SELECT ` + taskColumns + `
		FROM case_tasks t
		JOIN cases c ON c.id = t.case_id
		WHERE t.id = $1 AND c.org_id = $2
	`
	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, orgID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "task_not_found")
	}
	return task, nil
}

func (r *TaskRepo) HasActiveOfType(ctx context.Context, caseID string, taskType entity.TaskType) (bool, *app_errors.AppError) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM case_tasks
			WHERE case_id = $1 AND type = $2 AND status IN ('Pending', 'Started')
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, caseID, taskType).Scan(&exists); err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return exists, nil
}

func (r *TaskRepo) List(ctx context.Context, orgID string, filter entity.TaskFilter) ([]entity.CaseTaskEntity, *app_errors.AppError) {
	where := []string{"c.org_id = $1"}
	args := []any{orgID}
	argPos := 2

	if filter.CaseID != nil {
		where = append(where, fmt.Sprintf("t.case_id = $%d", argPos))
		args = append(args, *filter.CaseID)
		argPos++
	}
	if filter.AssignedTo != nil {
		where = append(where, fmt.Sprintf("t.assigned_to = $%d", argPos))
		args = append(args, *filter.AssignedTo)
		argPos++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("t.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM case_tasks t
		JOIN cases c ON c.id = t.case_id
		WHERE %s
		ORDER BY t.deadline ASC NULLS LAST, t.created_at DESC
	`, taskColumns, strings.Join(where, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	tasks := []entity.CaseTaskEntity{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return tasks, nil
}

// UpdateStatus setzt den Status nur, wenn er noch from ist, und stempelt started_at bzw. completed_at.
func (r *TaskRepo) UpdateStatus(ctx context.Context, t tx.Tx, taskID string, from, to entity.TaskStatus, at time.Time) (bool, *app_errors.AppError) {
	stamp := "started_at"
	if to == entity.TaskCompleted {
		stamp = "completed_at"
	}
	query := fmt.Sprintf(`UPDATE case_tasks SET status = $1, %s = $2 WHERE id = $3 AND status = $4`, stamp)

	tag, err := tx.Use(r.db, t).Exec(ctx, query, to, at, taskID, from)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepo) Reassign(ctx context.Context, taskID, assigneeID, assignedBy string, deadline *time.Time) *app_errors.AppError {
	query := `
		UPDATE case_tasks
		SET assigned_to = $1, assigned_by = $2, deadline = COALESCE($3, deadline), last_reminder_at = NULL
		WHERE id = $4 AND status <> 'Completed'
	`
	tag, err := r.db.Exec(ctx, query, assigneeID, assignedBy, deadline, taskID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewConflictError("conflict.task_already_completed", nil)
	}
	return nil
}

// ListOverdue liefert zugewiesene, offene Tasks mit abgelaufener Frist, die seit remindEvery nicht erinnert wurden.
func (r *TaskRepo) ListOverdue(ctx context.Context, now time.Time, remindEvery time.Duration) ([]entity.OverdueTask, *app_errors.AppError) {
	query := `
		SELECT t.id, t.case_id, c.org_id, c.client_name, t.type, t.assigned_to, t.deadline, t.last_reminder_at
		FROM case_tasks t
		JOIN cases c ON c.id = t.case_id
		WHERE t.status IN ('Pending', 'Started')
			AND t.assigned_to IS NOT NULL
			AND t.deadline IS NOT NULL
			AND t.deadline <= $1
			AND (t.last_reminder_at IS NULL OR t.last_reminder_at <= $2)
		ORDER BY t.deadline ASC
		LIMIT 500
	`
	rows, err := r.db.Query(ctx, query, now, now.Add(-remindEvery))
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.OverdueTask{}
	for rows.Next() {
		var o entity.OverdueTask
		if err := rows.Scan(&o.ID, &o.CaseID, &o.OrgID, &o.ClientName, &o.Type, &o.AssignedTo, &o.Deadline, &o.LastReminderAt); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}

func (r *TaskRepo) BatchMarkReminded(ctx context.Context, t tx.Tx, taskIDs []string, at time.Time) *app_errors.AppError {
	if len(taskIDs) == 0 {
		return nil
	}
	_, err := tx.Use(r.db, t).Exec(ctx, `UPDATE case_tasks SET last_reminder_at = $1 WHERE id = ANY($2::uuid[])`, at, taskIDs)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}
