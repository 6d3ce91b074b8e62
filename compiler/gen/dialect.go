package gen

import "github.com/dave/jennifer/jen"

// RecordGenerator generates per-record code.
// Each method is called once per record type in the graph.
type RecordGenerator interface {
	// GenPackage generates the record package constants ({record}/{record}.go)
	GenPackage(t *Type) *jen.File
	// GenPredicate generates the typed field predicates ({record}/where.go)
	GenPredicate(t *Type) *jen.File
	// GenSelect generates the selection entry point ({record}_select.go)
	GenSelect(t *Type) *jen.File
}

// GraphGenerator generates graph-level code.
// Each method is called once per generation run.
type GraphGenerator interface {
	// GenPredicatePackage generates the predicate package (predicate/predicate.go)
	GenPredicatePackage() *jen.File
}

// MinimalDialect is the interface a dialect must implement. The built-in
// SQL dialect lives in gen/sql; custom dialects plug in through
// the generator's WithDialect option.
type MinimalDialect interface {
	// Name returns the dialect name (e.g. "sql")
	Name() string
	RecordGenerator
	GraphGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// NewFilePath creates a new Jennifer file for the package at the given
	// import path. Qualified references to that path render unqualified.
	NewFilePath(path, pkg string) *jen.File

	// GoType returns the Jennifer code for a field's Go type.
	GoType(f *Field) jen.Code

	// BaseType returns the Jennifer code for a field's base type (without pointer).
	BaseType(f *Field) jen.Code

	// ZeroValue returns the Jennifer code for a field's zero value.
	ZeroValue(f *Field) jen.Code

	// RuntimePkg returns the import path of the selectable runtime package.
	RuntimePkg() string

	// SQLPkg returns the import path of the dialect/sql package.
	SQLPkg() string

	// DialectPkg returns the import path of the dialect package.
	DialectPkg() string

	// PredicatePkg returns the import path of the generated predicate package.
	PredicatePkg() string

	// RecordPkgPath returns the full import path of a record's subpackage.
	RecordPkgPath(t *Type) string

	// PredicateType returns the predicate type of a record (e.g. predicate.User).
	PredicateType(t *Type) jen.Code

	// Graph returns the record graph.
	Graph() *Graph

	// Pkg returns the output package name.
	Pkg() string
}
