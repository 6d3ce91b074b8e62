// Package field defines the type vocabulary shared by the record loader
// and the code generator.
//
// A record's fields are declared as plain Go struct fields. The loader maps
// every declared field to a TypeInfo describing its Go type:
//
//	type User struct {
//	    Email     string    // field.TypeString
//	    Age       int       // field.TypeInt
//	    ID        uuid.UUID // field.TypeUUID
//	    CreatedAt time.Time // field.TypeTime
//	}
//
// The generator uses the TypeInfo to pick scan targets (sql.NullString,
// sql.NullInt64, ...) and predicate helpers for the generated code. Column
// names in generated output follow database conventions (snake_case), while
// the Go struct field names remain PascalCase.
package field
