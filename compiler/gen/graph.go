package gen

import (
	"github.com/lukesneeringer/selectable/compiler/load"
)

type (
	// Config holds the global codegen configuration shared by all record
	// types in the graph.
	Config struct {
		// Package is the import path of the package declaring the
		// records. Generated subpackages live beneath it.
		Package string

		// Target is the directory generated files are written to.
		// It is the directory of the record package, so the Select
		// entry points can attach to the record types.
		Target string

		// Header is the comment placed at the top of every generated
		// file. Defaults to the standard "Code generated" header.
		Header string

		// BuildFlags are custom build flags forwarded to the loader.
		BuildFlags []string

		// Workers caps the number of parallel render and write workers.
		// Zero keeps the default (GOMAXPROCS).
		Workers int

		// Hooks wrap the generator and run around the generation.
		Hooks []Hook

		// Templates are user extension templates, each rendered once per
		// run with the graph as data and written as {name}.go.
		Templates []*Template

		// Generator renders the graph. Defaults to the jennifer-based
		// SQL generator.
		Generator Generator
	}

	// Graph holds the loaded record types of one generation run.
	Graph struct {
		*Config
		// Nodes are the record types, in load order.
		Nodes []*Type
	}

	// Generator is the interface that wraps the Generate method.
	Generator interface {
		// Generate generates the selection packages for the given graph.
		Generate(*Graph) error
	}

	// GenerateFunc allows an ordinary function to be used as a Generator.
	GenerateFunc func(*Graph) error

	// Hook wraps a Generator, like middleware. Hooks run in declaration
	// order: the first hook is the outermost.
	Hook func(Generator) Generator
)

// Generate calls f(g).
func (f GenerateFunc) Generate(g *Graph) error {
	return f(g)
}

// NewGraph creates a new Graph for the code generation from the given
// record descriptors. Each descriptor is expected to have been validated
// by the loader.
func NewGraph(c *Config, records ...*load.Record) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "nil configuration")
	}
	g := &Graph{Config: c, Nodes: make([]*Type, 0, len(records))}
	for _, r := range records {
		t, err := NewType(c, r)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
	}
	return g, nil
}

// Tables returns the distinct backing tables of the graph, in node order.
func (g *Graph) Tables() []string {
	seen := make(map[string]struct{}, len(g.Nodes))
	tables := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, ok := seen[n.Table]; ok {
			continue
		}
		seen[n.Table] = struct{}{}
		tables = append(tables, n.Table)
	}
	return tables
}

// Gen generates the artifacts for the graph: it runs the configured
// generator (or the default one) wrapped by the configured hooks.
func (g *Graph) Gen() error {
	var generator Generator = GenerateFunc(generate)
	if g.Generator != nil {
		generator = g.Generator
	}
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		generator = g.Hooks[i](generator)
	}
	return generator.Generate(g)
}

// generate is the default Generator implementation.
func generate(g *Graph) error {
	gen, err := NewGenerator(g)
	if err != nil {
		return err
	}
	return gen.Generate()
}
