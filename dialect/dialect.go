package dialect

import (
	"context"
)

// Dialect names supported by the engine.
const (
	// MySQL is the MySQL/MariaDB dialect.
	MySQL = "mysql"

	// Postgres is the PostgreSQL dialect.
	Postgres = "postgres"

	// SQLite is the SQLite dialect.
	SQLite = "sqlite"
)

// ExecQuerier wraps the two basic statement operations. The args parameter
// carries the bound arguments of the statement, and v receives the result:
// a *sql.Result for Exec (may be nil when the result is not needed), and a
// *sql.Rows for Query.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows.
	Exec(ctx context.Context, query string, args, v any) error

	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal interface the generated selection code executes
// against. Implementations live in dialect/sql; decorators (debug, stats)
// wrap this interface.
type Driver interface {
	ExecQuerier

	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)

	// Close closes the underlying connection.
	Close() error

	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transactional statement execution.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

type nopTx struct {
	Driver
}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// NopTx returns a Tx with a no-op Commit/Rollback on top of the given driver.
// It is used by callers that accept a Tx but run outside a real transaction.
func NopTx(d Driver) Tx {
	return nopTx{d}
}
