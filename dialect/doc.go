// Package dialect abstracts the database backend the generated
// selections execute against. PostgreSQL, MySQL/MariaDB and SQLite are
// supported, identified by the Postgres, MySQL and SQLite constants.
//
// The Driver interface is the execution surface the generated code
// depends on:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// Tx extends Driver with Commit and Rollback, and ExecQuerier is the
// subset shared by both.
//
// Opening a connection:
//
//	import (
//	    "github.com/lukesneeringer/selectable/dialect"
//	    "github.com/lukesneeringer/selectable/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// The dialect/sql sub-package holds the SQL builders and the
// database/sql-backed Driver; dialect/sql/schema inspects live
// databases to resolve declared columns.
package dialect
