// Package sql provides the SELECT statement builder and the database/sql
// driver binding that generated selection code executes against.
//
// SQL rendering adapts to the configured dialect:
//
//	import "github.com/lukesneeringer/selectable/dialect"
//
//	t1 := sql.Table("users")
//	sql.Dialect(dialect.Postgres).
//	    Select(t1.Columns("id", "email", "password_hash")...).
//	    From(t1).
//	    Where(sql.EQ(t1.C("status"), "active"))
//
// Predicates compose with And, Or and Not:
//
//	sql.EQ("name", "mei")              // name = ?
//	sql.GT("age", 18)                  // age > ?
//	sql.Contains("email", "@corp")     // email LIKE ?
//	sql.IsNull("deleted_at")           // deleted_at IS NULL
//	sql.In("status", "active", "new")  // status IN (?, ?)
//
// Generated record packages rarely touch this package directly; they go
// through the typed field values (StringField, IntField, ...) declared in
// their where.go, which produce predicates of the record's own type.
package sql
