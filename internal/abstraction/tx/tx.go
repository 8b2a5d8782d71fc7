package tx

import (
	"context"

	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Tx interface {
	Commit(ctx context.Context) *app_errors.AppError
	Rollback(ctx context.Context) *app_errors.AppError
}

type TxManager interface {
	Begin(ctx context.Context) (Tx, *app_errors.AppError)
}

// Querier ist die gemeinsame Teilmenge von *pgxpool.Pool und pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}
