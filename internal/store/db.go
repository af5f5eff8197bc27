package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the subset of database/sql used by task stores. Both
// *sql.DB and *sql.Tx satisfy it, so a store can run standalone or be
// rebound to a transaction via WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
