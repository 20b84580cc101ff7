package repositories

import (
	"context"
	"database/sql"
)

// Querier is the part of sql.DB and sql.Tx the repositories use, so the
// same code runs inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
