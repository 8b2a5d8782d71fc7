package tx

import (
	"context"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTxManager struct {
	db *pgxpool.Pool
}

func NewPgxTxManager(db *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{db: db}
}

func (m *PgxTxManager) Begin(ctx context.Context) (Tx, *app_errors.AppError) {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, app_errors.NewInternalError(err)
	}

	return &PgxTx{Tx: tx}, nil
}

type PgxTx struct {
	Tx pgx.Tx
}

func (t *PgxTx) Commit(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Commit(ctx); err != nil {
		return app_errors.NewInternalError(err)
	}
	return nil
}

// Rollback nach Commit ist ein No-op (pgx liefert ErrTxClosed, den wir ignorieren).
func (t *PgxTx) Rollback(ctx context.Context) *app_errors.AppError {
	_ = t.Tx.Rollback(ctx)
	return nil
}

// Use liefert die laufende pgx-Transaktion, falls t eine ist, sonst den Pool.
// Repos rufen das mit dem tx-Argument ihrer Methoden auf, damit dieselbe Methode
// innerhalb und außerhalb einer Transaktion funktioniert.
func Use(db *pgxpool.Pool, t Tx) Querier {
	if p, ok := t.(*PgxTx); ok && p != nil {
		return p.Tx
	}
	return db
}
