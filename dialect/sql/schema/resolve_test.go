package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() []*Table {
	return []*Table{
		{
			Name: "users",
			Columns: []*Column{
				{Name: "id", Type: "bigint"},
				{Name: "email", Type: "varchar(255)"},
				{Name: "password_hash", Type: "varchar(255)"},
				{Name: "biography", Type: "text", Nullable: true},
			},
		},
		{
			Name: "sessions",
			Columns: []*Column{
				{Name: "token", Type: "varchar(64)"},
			},
		},
	}
}

func TestResolve(t *testing.T) {
	err := Resolve(testTables(),
		&Expectation{Record: "User", Table: "users", Columns: []string{"id", "email", "password_hash", "biography"}},
		&Expectation{Record: "Session", Table: "sessions", Columns: []string{"token"}},
	)
	require.NoError(t, err)
}

func TestResolve_MissingTable(t *testing.T) {
	err := Resolve(testTables(),
		&Expectation{Record: "Order", Table: "orders", Columns: []string{"id"}},
	)
	require.Error(t, err)
	assert.True(t, IsMissingTable(err))
	assert.Contains(t, err.Error(), `table "orders" for record Order not found`)
}

func TestResolve_UnresolvedColumn(t *testing.T) {
	err := Resolve(testTables(),
		&Expectation{Record: "User", Table: "users", Columns: []string{"id", "emial"}},
	)
	require.Error(t, err)
	assert.True(t, IsUnresolvedColumn(err))
	assert.Contains(t, err.Error(), `column "emial" for record User not found in table "users"`)
}

func TestResolve_ReportsAllFailures(t *testing.T) {
	err := Resolve(testTables(),
		&Expectation{Record: "User", Table: "users", Columns: []string{"emial", "bio"}},
		&Expectation{Record: "Order", Table: "orders", Columns: []string{"id"}},
	)
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 3)
	assert.True(t, IsMissingTable(err))
	assert.True(t, IsUnresolvedColumn(err))
}

func TestTable_Column(t *testing.T) {
	tb := testTables()[0]
	c, ok := tb.Column("biography")
	require.True(t, ok)
	assert.True(t, c.Nullable)

	_, ok = tb.Column("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"id", "email", "password_hash", "biography"}, tb.ColumnNames())
}
