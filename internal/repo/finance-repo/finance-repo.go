package finance_repo

import (
	"context"
	"errors"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FinanceRepo struct {
	db *pgxpool.Pool
}

func NewFinanceRepo(db *pgxpool.Pool) FinanceRepoContract {
	return &FinanceRepo{
		db: db,
	}
}

const costCenterColumns = `project_id, total_pay_in, total_pay_out, remaining_budget, last_updated`

func scanCostCenter(row pgx.Row) (*entity.CostCenterEntity, error) {
	var cc entity.CostCenterEntity
	if err := row.Scan(&cc.ProjectID, &cc.TotalPayIn, &cc.TotalPayOut, &cc.RemainingBudget, &cc.LastUpdated); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *FinanceRepo) FindCostCenter(ctx context.Context, t tx.Tx, projectID string) (*entity.CostCenterEntity, *app_errors.AppError) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE project_id = $1`

	cc, err := scanCostCenter(tx.Use(r.db, t).QueryRow(ctx, query, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return cc, nil
}

// EnsureCostCenter legt die Kostenstelle an, falls sie fehlt. Parallele Aufrufe sind unkritisch.
func (r *FinanceRepo) EnsureCostCenter(ctx context.Context, t tx.Tx, projectID string, now time.Time) *app_errors.AppError {
	query := `
		INSERT INTO cost_centers (project_id, total_pay_in, total_pay_out, remaining_budget, last_updated)
		VALUES ($1, 0, 0, 0, $2)
		ON CONFLICT (project_id) DO NOTHING
	`
	if _, err := tx.Use(r.db, t).Exec(ctx, query, projectID, now); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// LockCostCenter sperrt die Zeile bis zum Ende der Transaktion. Ohne Transaktion sinnlos.
func (r *FinanceRepo) LockCostCenter(ctx context.Context, t tx.Tx, projectID string) (*entity.CostCenterEntity, *app_errors.AppError) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE project_id = $1 FOR UPDATE`

	cc, err := scanCostCenter(tx.Use(r.db, t).QueryRow(ctx, query, projectID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "cost_center_not_found")
	}
	return cc, nil
}

func (r *FinanceRepo) UpdateCostCenter(ctx context.Context, t tx.Tx, cc *entity.CostCenterEntity) *app_errors.AppError {
	query := `
		UPDATE cost_centers
		SET total_pay_in = $1, total_pay_out = $2, remaining_budget = $3, last_updated = $4
		WHERE project_id = $5
	`
	_, err := tx.Use(r.db, t).Exec(ctx, query, cc.TotalPayIn, cc.TotalPayOut, cc.RemainingBudget, cc.LastUpdated, cc.ProjectID)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *FinanceRepo) InsertTransaction(ctx context.Context, t tx.Tx, txn *entity.TransactionEntity) *app_errors.AppError {
	query := `
		INSERT INTO transactions (
			id, project_id, amount, type, category, date, payment_mode, description, created_by, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := tx.Use(r.db, t).Exec(ctx, query,
		txn.ID, txn.ProjectID, txn.Amount, txn.Type, txn.Category, txn.Date, txn.PaymentMode,
		txn.Description, txn.CreatedBy, txn.Status, txn.CreatedAt,
	)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *FinanceRepo) ListTransactions(ctx context.Context, projectID string, limit, offset int) ([]entity.TransactionEntity, *app_errors.AppError) {
	query := `
		SELECT id, project_id, amount, type, category, date, payment_mode, description, created_by, status, created_at
		FROM transactions
		WHERE project_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.TransactionEntity{}
	for rows.Next() {
		var t entity.TransactionEntity
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Amount, &t.Type, &t.Category, &t.Date, &t.PaymentMode,
			&t.Description, &t.CreatedBy, &t.Status, &t.CreatedAt); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}

func (r *FinanceRepo) ListCostCenters(ctx context.Context, orgID string) ([]entity.CostCenterEntity, *app_errors.AppError) {
	query := `
		SELECT cc.project_id, cc.total_pay_in, cc.total_pay_out, cc.remaining_budget, cc.last_updated
		FROM cost_centers cc
		JOIN cases c ON c.id = cc.project_id
		WHERE c.org_id = $1
		ORDER BY cc.last_updated DESC
	`
	rows, err := r.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.CostCenterEntity{}
	for rows.Next() {
		cc, err := scanCostCenter(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, *cc)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}
