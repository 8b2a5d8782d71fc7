package user_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepoContract {
	return &UserRepo{
		db: db,
	}
}

const userColumns = `id, org_id, email, name, role, is_active, email_notifications, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.UserEntity, error) {
	var u entity.UserEntity
	if err := row.Scan(&u.ID, &u.OrgID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.EmailNotifications, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]entity.UserEntity, error) {
	defer rows.Close()

	users := []entity.UserEntity{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`

	u, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}
	return u, nil
}

// ListByOrg liefert alle Benutzer der Organisation, alphabetisch nach Name.
func (r *UserRepo) ListByOrg(ctx context.Context, orgID string) ([]entity.UserEntity, *app_errors.AppError) {
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 ORDER BY lower(name), id`

	rows, err := r.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return users, nil
}

func (r *UserRepo) ListActiveByRoles(ctx context.Context, orgID string, roles []entity.UserRole) ([]entity.UserEntity, *app_errors.AppError) {
	if len(roles) == 0 {
		return []entity.UserEntity{}, nil
	}
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE org_id = $1 AND is_active AND role = ANY($2)
		ORDER BY lower(name), id
	`
	rows, err := r.db.Query(ctx, query, orgID, names)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return users, nil
}

// FirstActiveByRole ist der Queue-Standard des Routers. Kein Treffer liefert (nil, nil).
func (r *UserRepo) FirstActiveByRole(ctx context.Context, orgID string, role entity.UserRole) (*entity.UserEntity, *app_errors.AppError) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE org_id = $1 AND role = $2 AND is_active
		ORDER BY lower(name), id
		LIMIT 1
	`
	u, err := scanUser(r.db.QueryRow(ctx, query, orgID, role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return u, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, model entity.UserUpdate) (*entity.UserEntity, *app_errors.AppError) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	argPos := 1

	if model.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *model.Name)
		argPos++
	}

	if model.EmailNotifications != nil {
		setClauses = append(setClauses, fmt.Sprintf("email_notifications = $%d", argPos))
		args = append(args, *model.EmailNotifications)
		argPos++
	}

	if len(setClauses) == 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", fmt.Errorf("keine Felder zum Aktualisieren"))
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argPos, userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "user_not_found")
	}
	return u, nil
}
