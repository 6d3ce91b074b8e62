package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/dialect"
)

func TestOpenDB(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
	}{
		{"Postgres", dialect.Postgres},
		{"MySQL", dialect.MySQL},
		{"SQLite", dialect.SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			drv := OpenDB(tt.dialect, db)
			assert.NotNil(t, drv)
			assert.Equal(t, tt.dialect, drv.Dialect())
		})
	}
}

// Registered driver names normalize to their dialect name.
func TestDialectNormalization(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB("sqlite3", db)
	assert.Equal(t, dialect.SQLite, drv.Dialect())
}

func TestDriverQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("simple_query", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email FROM users").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
				AddRow(1, "mei@example.com").
				AddRow(2, "noa@example.com"))

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT id, email FROM users", []any{}, rows)
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_with_args", func(t *testing.T) {
		mock.ExpectQuery("SELECT email FROM users WHERE id = \\$1").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("mei@example.com"))

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT email FROM users WHERE id = $1", []any{1}, rows)
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_error", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnError(errors.New("database error"))

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT", []any{}, rows)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid_rows_type", func(t *testing.T) {
		err := drv.Query(context.Background(), "SELECT 1", []any{}, new(int))
		require.Error(t, err)
	})

	t.Run("invalid_args_type", func(t *testing.T) {
		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT 1", "not-a-slice", rows)
		require.Error(t, err)
	})
}

func TestDriverExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("simple_exec", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE users").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := drv.Exec(context.Background(), "CREATE TABLE users (id integer)", []any{}, nil)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec_with_result", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users").
			WillReturnResult(sqlmock.NewResult(0, 3))

		var res Result
		err := drv.Exec(context.Background(), "DELETE FROM users", []any{}, &res)
		require.NoError(t, err)
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec_error", func(t *testing.T) {
		mock.ExpectExec("DELETE").WillReturnError(errors.New("constraint violation"))

		err := drv.Exec(context.Background(), "DELETE FROM users", []any{}, nil)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDriverTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("successful_commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)

		rows := &Rows{}
		err = tx.Query(context.Background(), "SELECT id FROM users", []any{}, rows)
		require.NoError(t, err)

		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT").WillReturnError(errors.New("error"))
		mock.ExpectRollback()

		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)

		rows := &Rows{}
		err = tx.Query(context.Background(), "SELECT id FROM users", []any{}, rows)
		require.Error(t, err)

		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContextCancellation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock.ExpectQuery("SELECT").WillReturnError(context.Canceled)
	rows := &Rows{}
	err = drv.Query(ctx, "SELECT 1", []any{}, rows)
	assert.Error(t, err)
}

func TestNullValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name", "email"}).
			AddRow("Mei", nil).
			AddRow(nil, "noa@example.com"))

	rows := &Rows{}
	err = drv.Query(context.Background(), "SELECT name, email FROM users", []any{}, rows)
	require.NoError(t, err)
	for rows.Next() {
		var name, email NullString
		require.NoError(t, rows.Scan(&name, &email))
	}
	require.NoError(t, rows.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var slow []string
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
	)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectQuery("SELECT 2").WillReturnError(errors.New("boom"))
	require.Error(t, drv.Query(context.Background(), "SELECT 2", []any{}, rows))

	stats := drv.QueryStats().Stats()
	assert.Equal(t, int64(2), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Equal(t, int64(2), stats.SlowQueries)
	assert.Len(t, slow, 2)

	drv.QueryStats().Reset()
	assert.Equal(t, int64(0), drv.QueryStats().Stats().TotalQueries)
}

func TestStatsSnapshotString(t *testing.T) {
	s := StatsSnapshot{TotalQueries: 4, TotalDuration: 8 * time.Millisecond}
	assert.Contains(t, s.String(), "queries=4")
	assert.Equal(t, 2*time.Millisecond, s.AvgQueryDuration())
	assert.Equal(t, time.Duration(0), StatsSnapshot{}.AvgQueryDuration())
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var logged []string
	drv := NewDebugDriver(OpenDB(dialect.Postgres, db), DebugWithLog(func(_ context.Context, v ...any) {
		for _, s := range v {
			logged = append(logged, s.(string))
		}
	}))

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())

	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "SELECT 1")
}

func TestIsUnknownColumn(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql_1054", &mysql.MySQLError{Number: 1054, Message: "Unknown column 'emial' in 'field list'"}, true},
		{"mysql_other", &mysql.MySQLError{Number: 1146}, false},
		{"postgres_42703", &pq.Error{Code: "42703"}, true},
		{"postgres_other", &pq.Error{Code: "42P01"}, false},
		{"sqlite_message", errors.New("no such column: emial"), true},
		{"wrapped", errors.Join(errors.New("query"), &pq.Error{Code: "42703"}), true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnknownColumn(tt.err))
		})
	}
}

func TestIsUnknownTable(t *testing.T) {
	assert.True(t, IsUnknownTable(&mysql.MySQLError{Number: 1146}))
	assert.True(t, IsUnknownTable(&pq.Error{Code: "42P01"}))
	assert.True(t, IsUnknownTable(errors.New("no such table: users")))
	assert.False(t, IsUnknownTable(&pq.Error{Code: "42703"}))
	assert.False(t, IsUnknownTable(nil))
}

func TestIsSyntaxError(t *testing.T) {
	assert.True(t, IsSyntaxError(&mysql.MySQLError{Number: 1064}))
	assert.True(t, IsSyntaxError(&pq.Error{Code: "42601"}))
	assert.True(t, IsSyntaxError(errors.New(`near "FORM": syntax error`)))
	assert.False(t, IsSyntaxError(nil))
}
