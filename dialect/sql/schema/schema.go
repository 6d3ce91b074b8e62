// Package schema resolves record definitions against a live database
// schema. The Inspector reads table and column metadata through the
// Atlas inspection drivers, Resolve verifies that every mapped column
// exists, and Snapshot persists an inspection result so resolution can
// run offline.
package schema

// Column is one inspected database column.
type Column struct {
	Name     string `msgpack:"name"`
	Type     string `msgpack:"type"`
	Nullable bool   `msgpack:"nullable"`
}

// Table is one inspected database table.
type Table struct {
	Name    string    `msgpack:"name"`
	Columns []*Column `msgpack:"columns"`
}

// Column returns the column with the given name, if any.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns the column names of the table, in inspection order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func lookupTable(tables []*Table, name string) (*Table, bool) {
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
