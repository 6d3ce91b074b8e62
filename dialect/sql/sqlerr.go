package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Driver-specific codes for an unknown column reference.
const (
	// mysqlErrBadField is MySQL error 1054 (ER_BAD_FIELD_ERROR).
	mysqlErrBadField = 1054

	// pgUndefinedColumn is the PostgreSQL 42703 SQLSTATE.
	pgUndefinedColumn = "42703"
)

// IsUnknownColumn reports whether the error came back from the database
// because the statement referenced a column that does not exist. It
// understands the native error types of the MySQL and PostgreSQL drivers
// and falls back to message matching for SQLite, whose drivers return
// plain string errors.
func IsUnknownColumn(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrBadField
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == pgUndefinedColumn
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") || // sqlite
		strings.Contains(msg, "has no column named") // sqlite
}

// IsUnknownTable reports whether the error came back from the database
// because the statement referenced a table that does not exist.
func IsUnknownTable(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// ER_NO_SUCH_TABLE.
		return me.Number == 1146
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		// undefined_table.
		return string(pe.Code) == "42P01"
	}
	return strings.Contains(err.Error(), "no such table") // sqlite
}

// IsSyntaxError reports whether the error is a statement syntax error.
func IsSyntaxError(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// ER_PARSE_ERROR.
		return me.Number == 1064
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		// syntax_error.
		return string(pe.Code) == "42601"
	}
	return strings.Contains(err.Error(), "syntax error") // sqlite
}
