package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/compiler/load"
	"github.com/lukesneeringer/selectable/schema/field"
)

func userRecord() *load.Record {
	return &load.Record{
		Name:    "User",
		Table:   "users",
		Package: "github.com/example/app/model",
		Pos:     "user.go:10",
		Fields: []*load.Field{
			{Name: "ID", Info: &field.TypeInfo{Type: field.TypeInt64}, Position: 0},
			{Name: "Email", Info: &field.TypeInfo{Type: field.TypeString}, Position: 1},
			{Name: "PasswordHash", Info: &field.TypeInfo{Type: field.TypeString}, Position: 2},
			{Name: "Bio", Column: "biography", Info: &field.TypeInfo{Type: field.TypeString}, Optional: true, Position: 3},
		},
	}
}

func TestNewType(t *testing.T) {
	c := &Config{Package: "github.com/example/app/model", Target: "model"}
	typ, err := NewType(c, userRecord())
	require.NoError(t, err)

	assert.Equal(t, "User", typ.Name)
	assert.Equal(t, "users", typ.Table)
	assert.Equal(t, "user", typ.Label())
	assert.Equal(t, "user", typ.Package())
	assert.Equal(t, "model", typ.RecordPackage())
	assert.Equal(t, "u", typ.Receiver())
	assert.Equal(t, "UserSelection", typ.SelectionName())
	assert.Equal(t, "us", typ.SelectionReceiver())
	assert.Equal(t, "user_select.go", typ.SelectFile())
	assert.Equal(t, "user.go:10", typ.Pos())
	assert.True(t, typ.HasField("PasswordHash"))
	assert.False(t, typ.HasField("password_hash"))
}

func TestType_ColumnsDeclarationOrder(t *testing.T) {
	typ, err := NewType(&Config{}, userRecord())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email", "password_hash", "biography"}, typ.Columns())
}

func TestNewType_DuplicateColumn(t *testing.T) {
	r := userRecord()
	// Explicit override colliding with a derived column name.
	r.Fields[3].Column = "email"
	_, err := NewType(&Config{}, r)
	require.Error(t, err)
	assert.True(t, load.IsInvalidFieldName(err))
	assert.Contains(t, err.Error(), `column "email" already mapped`)
}

func TestField_Naming(t *testing.T) {
	typ, err := NewType(&Config{}, userRecord())
	require.NoError(t, err)

	f := typ.Fields[2]
	assert.Equal(t, "PasswordHash", f.StructField())
	assert.Equal(t, "password_hash", f.Column())
	assert.Equal(t, "FieldPasswordHash", f.Constant())
	assert.Equal(t, "PasswordHashField", f.FieldVar())
	assert.Equal(t, "ByPasswordHash", f.OrderName())
	assert.True(t, f.IsString())
	assert.True(t, f.Comparable())

	// Explicit db tag wins over the derived name.
	assert.Equal(t, "biography", typ.Fields[3].Column())
	assert.True(t, typ.Fields[3].Optional)
}

func TestField_Kinds(t *testing.T) {
	r := &load.Record{
		Name:  "Event",
		Table: "events",
		Fields: []*load.Field{
			{Name: "ID", Info: &field.TypeInfo{Type: field.TypeUUID, Ident: "uuid.UUID", PkgPath: "github.com/google/uuid"}, Position: 0},
			{Name: "Kind", Info: &field.TypeInfo{Type: field.TypeEnum, Ident: "model.EventKind"}, Position: 1},
			{Name: "Payload", Info: &field.TypeInfo{Type: field.TypeJSON, Ident: "json.RawMessage"}, Position: 2},
			{Name: "At", Info: &field.TypeInfo{Type: field.TypeTime}, Position: 3},
			{Name: "Done", Info: &field.TypeInfo{Type: field.TypeBool}, Position: 4},
			{Name: "Raw", Info: &field.TypeInfo{Type: field.TypeBytes}, Position: 5},
		},
	}
	typ, err := NewType(&Config{}, r)
	require.NoError(t, err)

	assert.True(t, typ.Fields[0].IsUUID())
	assert.True(t, typ.Fields[1].IsEnum())
	assert.True(t, typ.Fields[2].IsJSON())
	assert.True(t, typ.Fields[3].IsTime())
	assert.True(t, typ.Fields[4].IsBool())
	assert.True(t, typ.Fields[5].IsBytes())
	assert.False(t, typ.Fields[2].Comparable())
}

func TestNewGraph(t *testing.T) {
	c := &Config{Package: "github.com/example/app/model"}
	g, err := NewGraph(c, userRecord(), &load.Record{
		Name:  "Session",
		Table: "sessions",
		Fields: []*load.Field{
			{Name: "Token", Info: &field.TypeInfo{Type: field.TypeString}, Position: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, []string{"users", "sessions"}, g.Tables())
}

func TestNewGraph_NilConfig(t *testing.T) {
	_, err := NewGraph(nil, userRecord())
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestGraph_GenHooks(t *testing.T) {
	var order []string
	hook := func(name string) Hook {
		return func(next Generator) Generator {
			return GenerateFunc(func(g *Graph) error {
				order = append(order, name)
				return next.Generate(g)
			})
		}
	}
	c := &Config{
		Hooks: []Hook{hook("outer"), hook("inner")},
		Generator: GenerateFunc(func(*Graph) error {
			order = append(order, "generate")
			return nil
		}),
	}
	g, err := NewGraph(c, userRecord())
	require.NoError(t, err)
	require.NoError(t, g.Gen())
	assert.Equal(t, []string{"outer", "inner", "generate"}, order)
}
