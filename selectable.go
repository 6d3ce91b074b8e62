// Package selectable holds the runtime error types shared by generated
// record packages.
//
// The interesting machinery lives in the subpackages:
//
//   - compiler/load extracts record descriptors from annotated Go structs.
//   - compiler/gen renders the per-record selection packages.
//   - dialect and dialect/sql are the runtime the generated code executes
//     against.
//   - dialect/sql/schema resolves declared columns against a live database.
//
// A record is an ordinary struct with a directive comment:
//
//	//selectable:record table=users
//	type User struct {
//	    ID           int
//	    Email        string
//	    PasswordHash string `db:"password_hash"`
//	}
//
// Running the generator produces a user package whose Select entry point
// builds SELECT statements whose column list always matches the struct's
// field declaration order.
package selectable
