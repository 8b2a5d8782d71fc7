package quotation_repo

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/abstraction/tx"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuotationRepo struct {
	db *pgxpool.Pool
}

func NewQuotationRepo(db *pgxpool.Pool) QuotationRepoContract {
	return &QuotationRepo{
		db: db,
	}
}

const quotationColumns = `q.id, q.case_id, q.quotation_number, q.version, q.items, q.total_amount, q.discount_amount,
	q.tax_amount, q.grand_total, q.status, q.audit_status, q.audited_by, q.decided_by, q.pr_code, q.submitted_by, q.submitted_at`

func scanQuotation(row pgx.Row) (*entity.CaseQuotationEntity, error) {
	var q entity.CaseQuotationEntity
	if err := row.Scan(
		&q.ID, &q.CaseID, &q.QuotationNumber, &q.Version, &q.Items, &q.TotalAmount, &q.DiscountAmount,
		&q.TaxAmount, &q.GrandTotal, &q.Status, &q.AuditStatus, &q.AuditedBy, &q.DecidedBy, &q.PRCode, &q.SubmittedBy, &q.SubmittedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}

// NextVersion sperrt die Case-Zeile, damit zwei gleichzeitige Angebote nicht dieselbe Version bekommen.
func (r *QuotationRepo) NextVersion(ctx context.Context, t tx.Tx, caseID string) (int, *app_errors.AppError) {
	q := tx.Use(r.db, t)
	if _, err := q.Exec(ctx, `SELECT 1 FROM cases WHERE id = $1 FOR UPDATE`, caseID); err != nil {
		return 0, app_errors.MapPgxError(err)
	}

	var version int
	if err := q.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) + 1 FROM case_quotations WHERE case_id = $1`, caseID).Scan(&version); err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return version, nil
}

func (r *QuotationRepo) CreateQuotation(ctx context.Context, t tx.Tx, q *entity.CaseQuotationEntity) *app_errors.AppError {
	query := `
		INSERT INTO case_quotations (
			id, case_id, quotation_number, version, items, total_amount, discount_amount, tax_amount, grand_total,
			status, audit_status, submitted_by, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := tx.Use(r.db, t).Exec(ctx, query,
		q.ID, q.CaseID, q.QuotationNumber, q.Version, q.Items, q.TotalAmount, q.DiscountAmount, q.TaxAmount,
		q.GrandTotal, q.Status, q.AuditStatus, q.SubmittedBy, q.SubmittedAt,
	)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *QuotationRepo) FindQuotation(ctx context.Context, orgID, id string) (*entity.CaseQuotationEntity, *app_errors.AppError) {
	query := `
		SELECT ` + quotationColumns + `
		FROM case_quotations q
		JOIN cases c ON c.id = q.case_id
		WHERE q.id = $1 AND c.org_id = $2
	`
	q, err := scanQuotation(r.db.QueryRow(ctx, query, id, orgID))
	if err != nil {
		return nil, app_errors.MapPgxError(err, "quotation_not_found")
	}
	return q, nil
}

func (r *QuotationRepo) ListQuotations(ctx context.Context, orgID, caseID string) ([]entity.CaseQuotationEntity, *app_errors.AppError) {
	query := `
		SELECT ` + quotationColumns + `
		FROM case_quotations q
		JOIN cases c ON c.id = q.case_id
		WHERE q.case_id = $1 AND c.org_id = $2
		ORDER BY q.version DESC
	`
	rows, err := r.db.Query(ctx, query, caseID, orgID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.CaseQuotationEntity{}
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}

func (r *QuotationRepo) UpdateAudit(ctx context.Context, id string, from, to entity.AuditStatus, auditedBy string, prCode *string) (bool, *app_errors.AppError) {
	query := `
		UPDATE case_quotations
		SET audit_status = $1, audited_by = $2, pr_code = COALESCE($3, pr_code)
		WHERE id = $4 AND audit_status = $5
	`
	tag, err := r.db.Exec(ctx, query, to, auditedBy, prCode, id, from)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *QuotationRepo) UpdateDecision(ctx context.Context, id string, to entity.QuotationStatus, decidedBy string) (bool, *app_errors.AppError) {
	query := `
		UPDATE case_quotations
		SET status = $1, decided_by = $2
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, to, decidedBy, id, entity.QuotationPendingApproval)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *QuotationRepo) CreateBOQ(ctx context.Context, boq *entity.CaseBOQEntity) *app_errors.AppError {
	query := `
		INSERT INTO case_boqs (id, case_id, items, total_cost, status, submitted_by, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, boq.ID, boq.CaseID, boq.Items, boq.TotalCost, boq.Status, boq.SubmittedBy, boq.SubmittedAt)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *QuotationRepo) ListBOQs(ctx context.Context, orgID, caseID string) ([]entity.CaseBOQEntity, *app_errors.AppError) {
	query := `
		SELECT b.id, b.case_id, b.items, b.total_cost, b.status, b.submitted_by, b.submitted_at
		FROM case_boqs b
		JOIN cases c ON c.id = b.case_id
		WHERE b.case_id = $1 AND c.org_id = $2
		ORDER BY b.submitted_at DESC
	`
	rows, err := r.db.Query(ctx, query, caseID, orgID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	out := []entity.CaseBOQEntity{}
	for rows.Next() {
		var b entity.CaseBOQEntity
		if err := rows.Scan(&b.ID, &b.CaseID, &b.Items, &b.TotalCost, &b.Status, &b.SubmittedBy, &b.SubmittedAt); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return out, nil
}
