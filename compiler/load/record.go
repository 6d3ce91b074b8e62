package load

import (
	"fmt"

	"github.com/lukesneeringer/selectable/schema/field"
)

// Record represents the descriptor of one record type as extracted from its
// Go struct declaration. It is constructed once, during loading, and is
// immutable afterwards.
type Record struct {
	// Name is the struct type name (e.g. "User").
	Name string `json:"name,omitempty"`

	// Table is the backing table identifier, taken from the
	// table= argument of the record directive.
	Table string `json:"table,omitempty"`

	// Package is the import path of the package declaring the record.
	Package string `json:"package,omitempty"`

	// Pos is the source position of the type declaration ("file.go:12").
	// Used in diagnostics so failures point back at the declaration.
	Pos string `json:"pos,omitempty"`

	// Fields holds the selectable fields in source declaration order.
	Fields []*Field `json:"fields,omitempty"`
}

// Field represents one selectable field of a record in its declared
// position. The column name is either the explicit `db` tag value or is
// derived from the field name by the generator.
type Field struct {
	// Name is the Go struct field name (e.g. "PasswordHash").
	Name string `json:"name,omitempty"`

	// Column is the explicit column name from a `db:"..."` tag.
	// Empty when the column name is derived from Name.
	Column string `json:"column,omitempty"`

	// Info describes the declared Go type of the field.
	Info *field.TypeInfo `json:"type,omitempty"`

	// Optional indicates a pointer-typed field that scans NULL to nil.
	Optional bool `json:"optional,omitempty"`

	// Position is the zero-based index of the field in declaration order.
	Position int `json:"position"`

	// StructTag is the raw struct tag, preserved for template extensions.
	StructTag string `json:"struct_tag,omitempty"`

	// Comment is the field's doc comment, if any.
	Comment string `json:"comment,omitempty"`
}

// NewRecord validates the extracted descriptor and returns it. It enforces
// the definition-time invariants: a table identifier declared exactly once,
// at least one selectable field, and every column name mapping to a legal
// column identifier. Validation failures carry the record name, offending
// field and source position.
func NewRecord(r *Record) (*Record, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("load: record without a name")
	}
	if r.Table == "" {
		return nil, NewRecordError(r.Name, "", r.Pos, "missing table= in record directive", ErrMissingTable)
	}
	if !validColumn(r.Table) {
		return nil, NewRecordError(r.Name, "", r.Pos, fmt.Sprintf("table identifier %q is not a valid identifier", r.Table), ErrInvalidFieldName)
	}
	if len(r.Fields) == 0 {
		return nil, NewRecordError(r.Name, "", r.Pos, "no selectable fields declared", ErrNoFields)
	}
	seen := make(map[string]*Field, len(r.Fields))
	for i, f := range r.Fields {
		if err := r.checkField(f, i); err != nil {
			return nil, err
		}
		if prev, ok := seen[f.Name]; ok {
			return nil, NewRecordError(r.Name, f.Name, r.Pos, fmt.Sprintf("field redeclared (position %d and %d)", prev.Position, f.Position), ErrInvalidFieldName)
		}
		seen[f.Name] = f
	}
	return r, nil
}

// checkField validates one field descriptor at its declared position.
func (r *Record) checkField(f *Field, idx int) error {
	switch {
	case f.Name == "":
		return NewRecordError(r.Name, "", r.Pos, fmt.Sprintf("field at position %d has no name", idx), ErrInvalidFieldName)
	case f.Info == nil || !f.Info.Valid():
		return NewRecordError(r.Name, f.Name, r.Pos, "invalid field type", ErrInvalidFieldName)
	case f.Column != "" && !validColumn(f.Column):
		return NewRecordError(r.Name, f.Name, r.Pos, fmt.Sprintf("column override %q is not a valid column identifier", f.Column), ErrInvalidFieldName)
	case f.Column == "" && !validColumn(f.Name):
		return NewRecordError(r.Name, f.Name, r.Pos, fmt.Sprintf("field name %q cannot map to a column identifier", f.Name), ErrInvalidFieldName)
	case f.Position != idx:
		return NewRecordError(r.Name, f.Name, r.Pos, fmt.Sprintf("field position %d does not match declaration order %d", f.Position, idx), ErrInvalidFieldName)
	}
	return nil
}

// validColumn reports whether the name is usable as an unquoted column
// identifier: ASCII letter or underscore followed by ASCII letters, digits
// or underscores. Field names outside this set must declare an explicit
// `db` tag or are rejected.
func validColumn(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
