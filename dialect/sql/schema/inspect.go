package schema

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"log/slog"
	"time"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/lukesneeringer/selectable/dialect"
	"github.com/lukesneeringer/selectable/dialect/sql"
)

// slowInspection is the duration after which a schema inspection is
// logged as slow.
const slowInspection = 5 * time.Second

// Inspector reads table and column metadata from a live database through
// the Atlas inspection drivers.
type Inspector struct {
	dialect string
	db      *stdsql.DB
	// schema restricts the inspection to a named schema. Empty means the
	// connected (current) schema.
	schema string
}

// InspectorOption configures the inspector.
type InspectorOption func(*Inspector)

// WithSchemaName restricts the inspection to the named database schema.
func WithSchemaName(name string) InspectorOption {
	return func(i *Inspector) {
		i.schema = name
	}
}

// NewInspector creates an inspector on top of the given driver.
func NewInspector(drv *sql.Driver, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		dialect: drv.Dialect(),
		db:      drv.DB(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Tables inspects the connected schema and returns its tables.
func (i *Inspector) Tables(ctx context.Context) ([]*Table, error) {
	var (
		drv migrate.Driver
		err error
	)
	switch i.dialect {
	case dialect.MySQL:
		drv, err = mysql.Open(i.db)
	case dialect.Postgres:
		drv, err = postgres.Open(i.db)
	case dialect.SQLite:
		drv, err = sqlite.Open(i.db)
	default:
		return nil, fmt.Errorf("schema: unsupported dialect %q", i.dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("schema: open %s inspection driver: %w", i.dialect, err)
	}
	start := time.Now()
	s, err := drv.InspectSchema(ctx, i.schema, &atlas.InspectOptions{
		Mode: atlas.InspectTables,
	})
	if err != nil {
		return nil, fmt.Errorf("schema: inspect: %w", err)
	}
	if d := time.Since(start); d > slowInspection {
		slog.Warn("schema: slow inspection", "dialect", i.dialect, "duration", d)
	}
	tables := make([]*Table, 0, len(s.Tables))
	for _, t := range s.Tables {
		table := &Table{
			Name:    t.Name,
			Columns: make([]*Column, 0, len(t.Columns)),
		}
		for _, c := range t.Columns {
			table.Columns = append(table.Columns, &Column{
				Name:     c.Name,
				Type:     c.Type.Raw,
				Nullable: c.Type.Null,
			})
		}
		tables = append(tables, table)
	}
	return tables, nil
}
