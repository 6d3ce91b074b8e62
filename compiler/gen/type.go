package gen

import (
	"fmt"
	"path"

	"github.com/lukesneeringer/selectable/compiler/load"
	"github.com/lukesneeringer/selectable/schema/field"
)

type (
	// Type represents one record type of the graph: the struct name, the
	// backing table and the ordered selectable fields.
	Type struct {
		*Config
		def *load.Record
		// Name holds the record type name (e.g. "User").
		Name string
		// Table holds the backing table identifier.
		Table string
		// Fields holds the selectable fields in declaration order.
		Fields []*Field
		fields map[string]*Field
	}

	// Field holds the information of one record field used by the
	// emitters.
	Field struct {
		def *load.Field
		typ *Type
		// Name is the Go struct field name.
		Name string
		// Type holds the type information of the field.
		Type *field.TypeInfo
		// Optional indicates a pointer-typed field that scans NULL
		// to nil.
		Optional bool
		// Position is the zero-based declaration index.
		Position int
	}
)

// NewType creates a new type for the codegen from the given validated
// record descriptor. Beyond the loader's checks, it rejects two fields
// mapping to the same column.
func NewType(c *Config, r *load.Record) (*Type, error) {
	t := &Type{
		Config: c,
		def:    r,
		Name:   r.Name,
		Table:  r.Table,
		Fields: make([]*Field, 0, len(r.Fields)),
		fields: make(map[string]*Field, len(r.Fields)),
	}
	seen := make(map[string]*Field, len(r.Fields))
	for _, lf := range r.Fields {
		f := &Field{
			def:      lf,
			typ:      t,
			Name:     lf.Name,
			Type:     lf.Info,
			Optional: lf.Optional,
			Position: lf.Position,
		}
		if prev, ok := seen[f.Column()]; ok {
			return nil, load.NewRecordError(r.Name, f.Name, r.Pos,
				fmt.Sprintf("column %q already mapped by field %s", f.Column(), prev.Name), load.ErrInvalidFieldName)
		}
		seen[f.Column()] = f
		t.fields[f.Name] = f
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}

// Label returns the label (snake_case name) of the type. It is used as
// the generated subpackage name and in runtime diagnostics.
func (t *Type) Label() string {
	return snake(t.Name)
}

// Package returns the generated subpackage name for the type.
func (t *Type) Package() string {
	return t.Label()
}

// PackageDir returns the directory the type subpackage is written to,
// relative to the target directory.
func (t *Type) PackageDir() string {
	return t.Label()
}

// RecordPackage returns the package name of the package declaring the
// record struct.
func (t *Type) RecordPackage() string {
	return path.Base(t.def.Package)
}

// Receiver returns the receiver name of the type.
func (t *Type) Receiver() string {
	return receiver(t.Name)
}

// SelectionName returns the name of the generated selection builder
// (e.g. "UserSelection").
func (t *Type) SelectionName() string {
	return t.Name + "Selection"
}

// SelectionReceiver returns the receiver name of the selection builder.
func (t *Type) SelectionReceiver() string {
	return receiver(t.SelectionName())
}

// SelectFile returns the file name of the generated selection entry
// point (e.g. "user_select.go").
func (t *Type) SelectFile() string {
	return t.Label() + "_select.go"
}

// Columns returns the column names of the type, in declaration order.
func (t *Type) Columns() []string {
	columns := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		columns[i] = f.Column()
	}
	return columns
}

// HasField reports whether the type declares a field with the given
// struct field name.
func (t *Type) HasField(name string) bool {
	_, ok := t.fields[name]
	return ok
}

// Pos returns the source position of the record declaration.
func (t *Type) Pos() string {
	return t.def.Pos
}

// Owner returns the type declaring the field.
func (f *Field) Owner() *Type {
	return f.typ
}

// Column returns the column name of the field: the explicit `db` tag
// value when present, and the snake_case of the field name otherwise.
func (f *Field) Column() string {
	if f.def.Column != "" {
		return f.def.Column
	}
	return snake(f.Name)
}

// StructField returns the struct field name of the field.
func (f *Field) StructField() string {
	return f.Name
}

// Constant returns the column constant name of the field
// (e.g. "FieldPasswordHash").
func (f *Field) Constant() string {
	return "Field" + f.Name
}

// FieldVar returns the name of the typed predicate variable declared
// for the field in the generated where.go (e.g. "EmailField").
func (f *Field) FieldVar() string {
	return f.Name + "Field"
}

// OrderName returns the name of the ordering helper of the field
// (e.g. "ByEmail").
func (f *Field) OrderName() string {
	return "By" + f.Name
}

// IsString reports if the field is a string field.
func (f *Field) IsString() bool { return f.Type != nil && f.Type.Type == field.TypeString }

// IsBool reports if the field is a bool field.
func (f *Field) IsBool() bool { return f.Type != nil && f.Type.Type == field.TypeBool }

// IsTime reports if the field is a time.Time field.
func (f *Field) IsTime() bool { return f.Type != nil && f.Type.Type == field.TypeTime }

// IsEnum reports if the field is backed by a string-kinded named type.
func (f *Field) IsEnum() bool { return f.Type != nil && f.Type.Type == field.TypeEnum }

// IsUUID reports if the field is a UUID field.
func (f *Field) IsUUID() bool { return f.Type != nil && f.Type.Type == field.TypeUUID }

// IsJSON reports if the field is a JSON field.
func (f *Field) IsJSON() bool { return f.Type != nil && f.Type.Type == field.TypeJSON }

// IsBytes reports if the field is a []byte field.
func (f *Field) IsBytes() bool { return f.Type != nil && f.Type.Type == field.TypeBytes }

// Comparable reports whether the field supports ordering comparisons.
func (f *Field) Comparable() bool {
	return f.Type != nil && f.Type.Comparable()
}
