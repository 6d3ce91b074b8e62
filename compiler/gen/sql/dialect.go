// Package sql renders the SQL selection packages for the Jennifer
// generator. It is the built-in dialect: every record type gets a
// constants subpackage, typed field predicates and a selection entry
// point executing against dialect/sql drivers (PostgreSQL, MySQL,
// SQLite).
//
// Usage:
//
//	import (
//	    "github.com/lukesneeringer/selectable/compiler/gen"
//	    "github.com/lukesneeringer/selectable/compiler/gen/sql"
//	)
//
//	err := sql.Generate(graph)
//
// Generated code structure:
//
//	{target}/
//	├── {record}_select.go  # Select entry point and selection builder
//	├── predicate/
//	│   └── predicate.go    # Predicate type per record
//	└── {record}/
//	    ├── {record}.go     # Table and column constants, ordering options
//	    └── where.go        # Typed field predicates
package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/lukesneeringer/selectable/compiler/gen"
)

// Generate renders the SQL selection packages for the graph. It is the
// recommended entry point: it wires the SQL dialect into the Jennifer
// generator and applies the hooks registered on the configuration.
func Generate(g *gen.Graph) error {
	if g.Config == nil || g.Target == "" {
		return gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	base := gen.GenerateFunc(func(g *gen.Graph) error {
		generator, err := gen.NewGenerator(g)
		if err != nil {
			return err
		}
		generator.WithDialect(NewDialect(generator))
		return generator.Generate()
	})
	var generator gen.Generator = base
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		generator = g.Hooks[i](generator)
	}
	return generator.Generate(g)
}

// Dialect implements gen.MinimalDialect for SQL databases.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new SQL dialect generator.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sql"
}

// GenPackage generates the record constants file ({record}/{record}.go).
// Includes: label, table name, column constants, Columns, ValidColumn
// and the ordering options.
func (d *Dialect) GenPackage(t *gen.Type) *jen.File {
	return genPackage(d.helper, t)
}

// GenPredicate generates the typed field predicates ({record}/where.go).
func (d *Dialect) GenPredicate(t *gen.Type) *jen.File {
	return genPredicate(d.helper, t)
}

// GenSelect generates the selection entry point ({record}_select.go).
// Includes: the Select method on the record type and the selection
// builder with its query and execution methods.
func (d *Dialect) GenSelect(t *gen.Type) *jen.File {
	return genSelect(d.helper, t)
}

// GenPredicatePackage generates the predicate package file
// (predicate/predicate.go) with one predicate type per record.
func (d *Dialect) GenPredicatePackage() *jen.File {
	return genPredicatePackage(d.helper)
}

// Verify Dialect implements gen.MinimalDialect at compile time.
var _ gen.MinimalDialect = (*Dialect)(nil)
