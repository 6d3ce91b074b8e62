// Package compiler wires the record loader, the code generator and the
// schema resolver into one entry point. The CLI and go:generate hooks
// call into it; the subpackages remain usable on their own.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lukesneeringer/selectable/compiler/gen"
	gensql "github.com/lukesneeringer/selectable/compiler/gen/sql"
	"github.com/lukesneeringer/selectable/compiler/load"
	"github.com/lukesneeringer/selectable/dialect/sql"
	"github.com/lukesneeringer/selectable/dialect/sql/schema"
)

// DefaultConfigFile is the conventional configuration file name, looked
// up in the working directory when no explicit options are given.
const DefaultConfigFile = "selectable.yml"

// Options describes one generation run. It mirrors the layout of the
// selectable.yml configuration file.
type Options struct {
	// Path is the package pattern holding the record declarations
	// (e.g. "./model").
	Path string `yaml:"path"`

	// Records restricts generation to the named record types. Empty
	// generates every marked record in the package.
	Records []string `yaml:"records"`

	// Target is the directory generated files are written to. It must be
	// the directory of the record package, so the generated Select entry
	// points can attach to the record types.
	Target string `yaml:"target"`

	// Header overrides the header comment of generated files.
	Header string `yaml:"header"`

	// BuildFlags are extra build flags forwarded to the loader.
	BuildFlags []string `yaml:"build_flags"`

	// Workers caps parallel rendering and writing. Zero keeps the default.
	Workers int `yaml:"workers"`

	// Templates are paths of extension template files, each rendered once
	// per run with the graph as data and written as {name}.go.
	Templates []string `yaml:"templates"`

	// Resolve configures optional schema resolution.
	Resolve ResolveOptions `yaml:"resolve"`

	// Hooks wrap the generator. Only settable programmatically.
	Hooks []gen.Hook `yaml:"-"`
}

// ResolveOptions configures the schema resolution step. When a DSN or a
// snapshot is set, every mapped column is verified to exist before any
// file is written.
type ResolveOptions struct {
	// Dialect names the DSN's dialect ("mysql", "postgres", "sqlite").
	Dialect string `yaml:"dialect"`

	// DSN of the database to resolve against.
	DSN string `yaml:"dsn"`

	// Snapshot is a schema snapshot file. Without a DSN it is the
	// resolution source; with a DSN and WriteSnapshot it is refreshed
	// after a successful resolution.
	Snapshot string `yaml:"snapshot"`

	// WriteSnapshot stores the inspected schema at Snapshot after a
	// successful DSN resolution.
	WriteSnapshot bool `yaml:"write_snapshot"`
}

func (o ResolveOptions) enabled() bool {
	return o.DSN != "" || o.Snapshot != ""
}

// LoadOptions reads an Options file. Unknown keys are rejected so typos
// in the configuration fail loudly.
func LoadOptions(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("compiler: open config %s: %w", path, err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	opts := &Options{}
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("compiler: parse config %s: %w", path, err)
	}
	return opts, nil
}

// LoadGraph loads the record declarations and builds the codegen graph.
func (o *Options) LoadGraph() (*gen.Graph, error) {
	res, err := (&load.Config{
		Path:       o.Path,
		Names:      o.Records,
		BuildFlags: o.BuildFlags,
	}).Load()
	if err != nil {
		return nil, err
	}
	target := o.Target
	if target == "" {
		target = o.Path
	}
	templates, err := o.loadTemplates()
	if err != nil {
		return nil, err
	}
	cfg, err := gen.NewConfig(
		gen.WithPackage(res.PkgPath),
		gen.WithTarget(target),
		gen.WithWorkers(o.Workers),
		gen.WithBuildFlags(o.BuildFlags...),
		gen.WithHooks(o.Hooks...),
		gen.WithTemplates(templates...),
	)
	if err != nil {
		return nil, err
	}
	cfg.Header = o.Header
	return gen.NewGraph(cfg, res.Records...)
}

// loadTemplates parses the configured extension template files. The
// template name is the file name without its extension.
func (o *Options) loadTemplates() ([]*gen.Template, error) {
	templates := make([]*gen.Template, 0, len(o.Templates))
	for _, path := range o.Templates {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("compiler: read template %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		tmpl, err := gen.NewTemplate(name).Parse(string(text))
		if err != nil {
			return nil, fmt.Errorf("compiler: parse template %s: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Generate runs the full pipeline: load and validate the records,
// resolve them against the schema when configured, and generate the
// selection packages. Resolution runs before generation, so an
// unresolved column never leaves stale generated code behind.
func Generate(ctx context.Context, o *Options) error {
	graph, err := o.LoadGraph()
	if err != nil {
		return err
	}
	slog.Debug("compiler: graph loaded", "records", len(graph.Nodes), "target", graph.Target)
	if o.Resolve.enabled() {
		if err := resolveGraph(ctx, graph, o.Resolve); err != nil {
			return err
		}
		slog.Debug("compiler: columns resolved", "tables", graph.Tables())
	}
	return gensql.Generate(graph)
}

// expectations converts the graph nodes into resolver expectations.
func expectations(g *gen.Graph) []*schema.Expectation {
	expects := make([]*schema.Expectation, len(g.Nodes))
	for i, t := range g.Nodes {
		expects[i] = &schema.Expectation{
			Record:  t.Name,
			Table:   t.Table,
			Columns: t.Columns(),
		}
	}
	return expects
}

// resolveGraph verifies the graph's column mappings against a live
// database or a stored snapshot.
func resolveGraph(ctx context.Context, g *gen.Graph, o ResolveOptions) error {
	expects := expectations(g)
	if o.DSN == "" {
		snap, err := schema.ReadSnapshot(o.Snapshot)
		if err != nil {
			return err
		}
		return snap.Resolve(expects...)
	}
	if o.Dialect == "" {
		return fmt.Errorf("compiler: resolve: dsn given without a dialect")
	}
	drv, err := sql.Open(o.Dialect, o.DSN)
	if err != nil {
		return fmt.Errorf("compiler: resolve: open %s: %w", o.Dialect, err)
	}
	defer drv.Close()
	snap, err := schema.NewInspector(drv).Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := snap.Resolve(expects...); err != nil {
		return err
	}
	if o.WriteSnapshot && o.Snapshot != "" {
		if err := schema.WriteSnapshot(o.Snapshot, snap); err != nil {
			return err
		}
	}
	return nil
}
