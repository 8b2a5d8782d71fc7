package case_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CaseRepo struct {
	db *pgxpool.Pool
}

func NewCaseRepo(db *pgxpool.Pool) CaseRepoContract {
	return &CaseRepo{
		db: db,
	}
}

const caseColumns = `id, org_id, client_name, project_name, email, mobile, site_address, source, priority,
	status, is_project, assigned_sales, assigned_procurement, assigned_team, budget, created_by, created_at, updated_at`

const insertCase = `
	INSERT INTO cases (
		id, org_id, client_name, project_name, email, mobile, site_address, source, priority,
		status, is_project, assigned_sales, assigned_procurement, assigned_team, budget, created_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

func caseArgs(c *entity.CaseEntity) []any {
	team := c.AssignedTeam
	if team == nil {
		team = map[entity.UserRole]string{}
	}
	return []any{
		c.ID, c.OrgID, c.ClientName, c.ProjectName, c.Email, c.Mobile, c.SiteAddress, c.Source, c.Priority,
		c.Status, c.IsProject, c.AssignedSales, c.AssignedProcurement, team, c.Budget, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	}
}

func scanCase(row pgx.Row) (*entity.CaseEntity, error) {
	var c entity.CaseEntity
	if err := row.Scan(
		&c.ID, &c.OrgID, &c.ClientName, &c.ProjectName, &c.Email, &c.Mobile, &c.SiteAddress, &c.Source, &c.Priority,
		&c.Status, &c.IsProject, &c.AssignedSales, &c.AssignedProcurement, &c.AssignedTeam, &c.Budget, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if c.AssignedTeam == nil {
		c.AssignedTeam = map[entity.UserRole]string{}
	}
	return &c, nil
}

func (r *CaseRepo) Create(ctx context.Context, t tx.Tx, c *entity.CaseEntity) *app_errors.AppError {
	if _, err := tx.Use(r.db, t).Exec(ctx, insertCase, caseArgs(c)...); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// CreateMany schreibt alle Cases in einem Batch. Der Aufrufer sollte eine Transaktion übergeben,
// sonst bleiben bei einem Fehler die bereits geschriebenen Zeilen bestehen.
func (r *CaseRepo) CreateMany(ctx context.Context, t tx.Tx, cases []entity.CaseEntity) (int, *app_errors.AppError) {
	if len(cases) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i := range cases {
		batch.Queue(insertCase, caseArgs(&cases[i])...)
	}

	results := tx.Use(r.db, t).SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range cases {
		if _, err := results.Exec(); err != nil {
			return inserted, app_errors.MapPgxError(err)
		}
		inserted++
	}
	return inserted, nil
}

func (r *CaseRepo) FindByID(ctx context.Context, t tx.Tx, orgID, caseID string) (*entity.CaseEntity, *app_errors.AppError) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1 AND org_id = $2`

	c, err := scanCase(tx.Use(r.db, t).QueryRow(ctx, query, caseID, orgID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "case_not_found")
	}
	return c, nil
}

func (r *CaseRepo) List(ctx context.Context, orgID string, filter entity.CaseFilter) ([]entity.CaseEntity, *app_errors.AppError) {
	where := []string{"org_id = $1"}
	args := []any{orgID}
	argPos := 2

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.IsProject != nil {
		where = append(where, fmt.Sprintf("is_project = $%d", argPos))
		args = append(args, *filter.IsProject)
		argPos++
	}
	if filter.Search != nil && *filter.Search != "" {
		where = append(where, fmt.Sprintf("(client_name ILIKE $%d OR project_name ILIKE $%d OR email ILIKE $%d)", argPos, argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM cases WHERE %s ORDER BY created_at DESC`, caseColumns, strings.Join(where, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	cases := []entity.CaseEntity{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		cases = append(cases, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return cases, nil
}

// TransitionStatus setzt den Status nur, wenn er noch from ist. false heißt: jemand war schneller.
func (r *CaseRepo) TransitionStatus(ctx context.Context, t tx.Tx, orgID, caseID string, from, to entity.CaseStatus, isProject bool) (bool, *app_errors.AppError) {
	query := `
		UPDATE cases
		SET status = $1, is_project = $2, updated_at = now()
		WHERE id = $3 AND org_id = $4 AND status = $5
	`
	tag, err := tx.Use(r.db, t).Exec(ctx, query, to, isProject, caseID, orgID, from)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CaseRepo) Update(ctx context.Context, orgID, caseID string, model entity.CaseUpdate) (*entity.CaseEntity, *app_errors.AppError) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	argPos := 1

	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if model.ClientName != nil {
		set("client_name", *model.ClientName)
	}
	if model.ProjectName != nil {
		set("project_name", *model.ProjectName)
	}
	if model.Email != nil {
		set("email", *model.Email)
	}
	if model.Mobile != nil {
		set("mobile", *model.Mobile)
	}
	if model.SiteAddress != nil {
		set("site_address", *model.SiteAddress)
	}
	if model.Source != nil {
		set("source", *model.Source)
	}
	if model.Priority != nil {
		set("priority", *model.Priority)
	}
	if model.Budget != nil {
		set("budget", *model.Budget)
	}
	if model.AssignedSales != nil {
		set("assigned_sales", nullable(*model.AssignedSales))
	}
	if model.AssignedProcurement != nil {
		set("assigned_procurement", nullable(*model.AssignedProcurement))
	}
	if model.AssignedTeam != nil {
		// Teamzuweisungen werden zusammengeführt, nicht ersetzt
		setClauses = append(setClauses, fmt.Sprintf("assigned_team = assigned_team || $%d::jsonb", argPos))
		args = append(args, model.AssignedTeam)
		argPos++
	}

	if len(setClauses) == 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", fmt.Errorf("keine Felder zum Aktualisieren"))
	}
	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, caseID, orgID)

	query := fmt.Sprintf(`UPDATE cases SET %s WHERE id = $%d AND org_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argPos, argPos+1, caseColumns)

	c, err := scanCase(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "case_not_found")
	}
	return c, nil
}

func (r *CaseRepo) Delete(ctx context.Context, orgID, caseID string) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `DELETE FROM cases WHERE id = $1 AND org_id = $2`, caseID, orgID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("case_not_found")
	}
	return nil
}

// leerer String entfernt die Zuweisung
func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
