package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/compiler/gen"
	"github.com/lukesneeringer/selectable/compiler/load"
	"github.com/lukesneeringer/selectable/schema/field"
)

func testGraph(t *testing.T) *gen.Graph {
	t.Helper()
	cfg, err := gen.NewConfig(
		gen.WithPackage("example.com/app/model"),
		gen.WithTarget(t.TempDir()),
	)
	require.NoError(t, err)
	user := &load.Record{
		Name:    "User",
		Table:   "users",
		Package: "example.com/app/model",
		Fields: []*load.Field{
			{Name: "ID", Position: 0, Info: &field.TypeInfo{
				Type: field.TypeUUID, Ident: "uuid.UUID", PkgPath: "github.com/google/uuid",
			}},
			{Name: "Email", Column: "email_address", Position: 1, Info: &field.TypeInfo{Type: field.TypeString}},
			{Name: "Age", Optional: true, Position: 2, Info: &field.TypeInfo{Type: field.TypeInt}},
			{Name: "CreatedAt", Position: 3, Info: &field.TypeInfo{
				Type: field.TypeTime, Ident: "time.Time", PkgPath: "time",
			}},
		},
	}
	group := &load.Record{
		Name:    "Group",
		Table:   "groups",
		Package: "example.com/app/model",
		Fields: []*load.Field{
			{Name: "ID", Position: 0, Info: &field.TypeInfo{Type: field.TypeInt64}},
			{Name: "Active", Position: 1, Info: &field.TypeInfo{Type: field.TypeBool}},
			{Name: "Score", Position: 2, Info: &field.TypeInfo{Type: field.TypeFloat64}},
			{Name: "Meta", Optional: true, Position: 3, Info: &field.TypeInfo{
				Type: field.TypeJSON, Ident: "map[string]interface{}",
			}},
		},
	}
	g, err := gen.NewGraph(cfg, user, group)
	require.NoError(t, err)
	return g
}

func TestSchemaFragment(t *testing.T) {
	doc, err := SchemaFragment(testGraph(t))
	require.NoError(t, err)

	assert.Contains(t, doc, "scalar Time\n")
	assert.Contains(t, doc, "scalar UUID\n")
	assert.Contains(t, doc, "scalar JSON\n")

	assert.Contains(t, doc, "type User {\n"+
		"  id: UUID!\n"+
		"  email: String!\n"+
		"  age: Int\n"+
		"  createdAt: Time!\n"+
		"}\n")
	assert.Contains(t, doc, "type Group {\n"+
		"  id: Int!\n"+
		"  active: Boolean!\n"+
		"  score: Float!\n"+
		"  meta: JSON\n"+
		"}\n")
}

func TestSchemaFragment_NoUnusedScalars(t *testing.T) {
	cfg, err := gen.NewConfig(
		gen.WithPackage("example.com/app/model"),
		gen.WithTarget(t.TempDir()),
	)
	require.NoError(t, err)
	g, err := gen.NewGraph(cfg, &load.Record{
		Name: "Tag", Table: "tags", Package: "example.com/app/model",
		Fields: []*load.Field{
			{Name: "Name", Position: 0, Info: &field.TypeInfo{Type: field.TypeString}},
		},
	})
	require.NoError(t, err)

	doc, err := SchemaFragment(g)
	require.NoError(t, err)
	assert.NotContains(t, doc, "scalar")
	assert.Contains(t, doc, "type Tag {\n  name: String!\n}\n")
}

func TestFieldType(t *testing.T) {
	g := testGraph(t)
	user := g.Nodes[0]
	want := []string{"UUID", "String", "Int", "Time"}
	for i, f := range user.Fields {
		assert.Equal(t, want[i], fieldType(f), f.Name)
	}
}

func TestValidateFragment(t *testing.T) {
	require.NoError(t, validateFragment("type User {\n  id: Int!\n}\n"))

	err := validateFragment("type User {\n  id: Missing!\n}\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema fragment")
}
