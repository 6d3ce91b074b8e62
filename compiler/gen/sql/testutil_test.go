package sql

import (
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/compiler/gen"
	"github.com/lukesneeringer/selectable/compiler/load"
	"github.com/lukesneeringer/selectable/schema/field"
)

// testGraph builds a two-record graph covering the interesting column
// kinds: plain strings, an optional pointer field, time, bool, JSON and
// a UUID key.
func testGraph(t *testing.T) *gen.Graph {
	t.Helper()
	c := &gen.Config{
		Package: "github.com/example/app/model",
		Target:  "model",
	}
	g, err := gen.NewGraph(c,
		&load.Record{
			Name:    "User",
			Table:   "users",
			Package: "github.com/example/app/model",
			Fields: []*load.Field{
				{Name: "ID", Info: &field.TypeInfo{Type: field.TypeInt64}, Position: 0},
				{Name: "Email", Info: &field.TypeInfo{Type: field.TypeString}, Position: 1},
				{Name: "PasswordHash", Info: &field.TypeInfo{Type: field.TypeString}, Position: 2},
				{Name: "Bio", Column: "biography", Info: &field.TypeInfo{Type: field.TypeString}, Optional: true, Position: 3},
				{Name: "Active", Info: &field.TypeInfo{Type: field.TypeBool}, Position: 4},
				{Name: "CreatedAt", Info: &field.TypeInfo{Type: field.TypeTime}, Position: 5},
			},
		},
		&load.Record{
			Name:    "Event",
			Table:   "events",
			Package: "github.com/example/app/model",
			Fields: []*load.Field{
				{Name: "ID", Info: &field.TypeInfo{Type: field.TypeUUID, Ident: "uuid.UUID", PkgPath: "github.com/google/uuid"}, Position: 0},
				{Name: "Payload", Info: &field.TypeInfo{Type: field.TypeJSON, Ident: "json.RawMessage"}, Position: 1},
				{Name: "Score", Info: &field.TypeInfo{Type: field.TypeFloat64}, Position: 2},
			},
		},
	)
	require.NoError(t, err)
	return g
}

// testDialect returns the SQL dialect wired to a generator over testGraph.
func testDialect(t *testing.T) (*Dialect, *gen.Graph) {
	t.Helper()
	g := testGraph(t)
	h, err := gen.NewGenerator(g)
	require.NoError(t, err)
	return NewDialect(h), g
}

// render renders a Jennifer file to source text.
func render(t *testing.T, f *jen.File) string {
	t.Helper()
	require.NotNil(t, f)
	var sb strings.Builder
	require.NoError(t, f.Render(&sb))
	return sb.String()
}

// ordered asserts the substrings appear in the given order.
func ordered(t *testing.T, s string, subs ...string) {
	t.Helper()
	last := -1
	for _, sub := range subs {
		idx := strings.Index(s, sub)
		require.GreaterOrEqual(t, idx, 0, "missing %q", sub)
		require.Greater(t, idx, last, "%q out of order", sub)
		last = idx
	}
}
