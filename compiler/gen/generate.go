package gen

import (
	"bytes"
	"context"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// DefaultHeader is the comment placed at the top of every generated file
// when the configuration does not override it.
const DefaultHeader = "Code generated by selectable. DO NOT EDIT."

// JenniferGenerator renders the selection packages with Jennifer.
// Rendering happens fully in memory; files touch the disk only after
// every file of the run rendered successfully, so a failing record never
// leaves a half-written target behind.
type JenniferGenerator struct {
	graph   *Graph
	workers int
	outDir  string
	pkg     string

	// Dialect renders the per-record and graph-level files.
	// Must be set before Generate (gen/sql provides the SQL one).
	dialect MinimalDialect
}

// NewGenerator creates a generator for the given graph. The output
// directory and package name are derived from the graph configuration.
// A dialect must be set with WithDialect before calling Generate.
func NewGenerator(g *Graph) (*JenniferGenerator, error) {
	if g == nil || g.Config == nil {
		return nil, NewConfigError("Graph", nil, "nil graph")
	}
	if g.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	pkg := filepath.Base(g.Target)
	if g.Package != "" {
		pkg = path.Base(g.Package)
	}
	workers := runtime.GOMAXPROCS(0)
	if g.Workers > 0 {
		workers = g.Workers
	}
	return &JenniferGenerator{
		graph:   g,
		workers: workers,
		outDir:  g.Target,
		pkg:     pkg,
	}, nil
}

// WithWorkers sets the number of parallel render workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithDialect sets the dialect that renders the files.
func (g *JenniferGenerator) WithDialect(d MinimalDialect) *JenniferGenerator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// Generate renders every file of the graph and writes the results.
// Per record R it produces R's constants package ({r}/{r}.go), the typed
// field predicates ({r}/where.go) and the selection entry point
// ({r}_select.go), plus one shared predicate/predicate.go.
func (g *JenniferGenerator) Generate() error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	files, err := g.render(context.Background())
	if err != nil {
		return err
	}
	w := NewWriter(g.outDir).WithWorkers(g.workers)
	return w.WriteAll(context.Background(), files)
}

// render produces the full file set in memory.
func (g *JenniferGenerator) render(ctx context.Context) ([]*RenderedFile, error) {
	type task struct {
		name   string // output path relative to the target directory
		render func() ([]byte, error)
	}
	// jenTask renders a dialect-produced Jennifer file.
	jenTask := func(record, name string, gen func() *jen.File) task {
		return task{name, func() ([]byte, error) {
			f := gen()
			if f == nil {
				return nil, NewGenerationError(record, name, "dialect rendered no file", nil)
			}
			var sb strings.Builder
			if err := f.Render(&sb); err != nil {
				return nil, NewGenerationError(record, name, "render", err)
			}
			return []byte(sb.String()), nil
		}}
	}
	tasks := make([]task, 0, 3*len(g.graph.Nodes)+1+len(g.graph.Templates))
	for _, t := range g.graph.Nodes {
		tasks = append(tasks,
			jenTask(t.Name, filepath.Join(t.PackageDir(), t.Package()+".go"), func() *jen.File { return g.dialect.GenPackage(t) }),
			jenTask(t.Name, filepath.Join(t.PackageDir(), "where.go"), func() *jen.File { return g.dialect.GenPredicate(t) }),
			jenTask(t.Name, t.SelectFile(), func() *jen.File { return g.dialect.GenSelect(t) }),
		)
	}
	tasks = append(tasks, jenTask("", filepath.Join("predicate", "predicate.go"), g.dialect.GenPredicatePackage))
	for _, tmpl := range g.graph.Templates {
		name := tmpl.name + ".go"
		tasks = append(tasks, task{name, func() ([]byte, error) {
			var buf bytes.Buffer
			if err := tmpl.tmpl.Execute(&buf, g.graph); err != nil {
				return nil, NewGenerationError("", name, "execute template", err)
			}
			return buf.Bytes(), nil
		}})
	}

	var (
		mu    sync.Mutex
		files = make([]*RenderedFile, len(tasks))
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, t := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			content, err := t.render()
			if err != nil {
				return err
			}
			mu.Lock()
			files[i] = &RenderedFile{Name: t.name, Content: content}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// NewFile creates a new Jennifer file with the configured header comment.
func (g *JenniferGenerator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(g.header())
	return f
}

// NewFilePath creates a new Jennifer file for the package at the given
// import path. Qualified references to that path render unqualified, so
// files placed inside the record package can name its types directly.
func (g *JenniferGenerator) NewFilePath(path, pkg string) *jen.File {
	f := jen.NewFilePathName(path, pkg)
	f.HeaderComment(g.header())
	return f
}

func (g *JenniferGenerator) header() string {
	if g.graph.Header != "" {
		return g.graph.Header
	}
	return DefaultHeader
}

// GoType returns the Jennifer code for a field's declared Go type,
// including the pointer for optional fields.
func (g *JenniferGenerator) GoType(f *Field) jen.Code {
	if f.Optional {
		return jen.Op("*").Add(g.BaseType(f))
	}
	return g.BaseType(f)
}

// BaseType returns the Jennifer code for a field's base type (without
// the optional pointer).
func (g *JenniferGenerator) BaseType(f *Field) jen.Code {
	if f.Type == nil {
		return jen.Any()
	}
	// Named types carry their identifier and package path.
	if f.Type.Ident != "" {
		name := f.Type.Ident
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		if f.Type.PkgPath != "" {
			return jen.Qual(f.Type.PkgPath, name)
		}
		// Same-package named type (e.g. a local enum).
		return jen.Id(name)
	}
	switch f.Type.String() {
	case "string":
		return jen.String()
	case "int":
		return jen.Int()
	case "int8":
		return jen.Int8()
	case "int16":
		return jen.Int16()
	case "int32":
		return jen.Int32()
	case "int64":
		return jen.Int64()
	case "uint":
		return jen.Uint()
	case "uint8":
		return jen.Uint8()
	case "uint16":
		return jen.Uint16()
	case "uint32":
		return jen.Uint32()
	case "uint64":
		return jen.Uint64()
	case "float32":
		return jen.Float32()
	case "float64":
		return jen.Float64()
	case "bool":
		return jen.Bool()
	case "time.Time":
		return jen.Qual("time", "Time")
	case "uuid.UUID":
		return jen.Qual("github.com/google/uuid", "UUID")
	case "[]byte":
		return jen.Index().Byte()
	case "json.RawMessage":
		return jen.Qual("encoding/json", "RawMessage")
	default:
		return jen.Any()
	}
}

// ZeroValue returns the Jennifer code for a field's zero value.
// Optional fields are pointers and zero to nil.
func (g *JenniferGenerator) ZeroValue(f *Field) jen.Code {
	if f == nil || f.Type == nil {
		return jen.Nil()
	}
	if f.Optional {
		return jen.Nil()
	}
	switch {
	case f.IsString(), f.IsEnum():
		return jen.Lit("")
	case f.IsBool():
		return jen.False()
	case f.IsTime():
		return jen.Qual("time", "Time").Values()
	case f.IsUUID():
		return jen.Qual("github.com/google/uuid", "Nil")
	case f.Type.Numeric():
		return jen.Lit(0)
	default:
		return jen.Nil()
	}
}

// RuntimePkg returns the import path of the selectable runtime package.
func (g *JenniferGenerator) RuntimePkg() string {
	return "github.com/lukesneeringer/selectable"
}

// SQLPkg returns the import path of the dialect/sql package.
func (g *JenniferGenerator) SQLPkg() string {
	return "github.com/lukesneeringer/selectable/dialect/sql"
}

// DialectPkg returns the import path of the dialect package.
func (g *JenniferGenerator) DialectPkg() string {
	return "github.com/lukesneeringer/selectable/dialect"
}

// PredicatePkg returns the import path of the generated predicate package.
func (g *JenniferGenerator) PredicatePkg() string {
	if g.graph.Package != "" {
		return g.graph.Package + "/predicate"
	}
	return g.pkg + "/predicate"
}

// RecordPkgPath returns the full import path of a record's subpackage.
func (g *JenniferGenerator) RecordPkgPath(t *Type) string {
	if g.graph.Package != "" {
		return g.graph.Package + "/" + t.PackageDir()
	}
	return g.pkg + "/" + t.PackageDir()
}

// PredicateType returns the predicate type of a record (e.g. predicate.User).
func (g *JenniferGenerator) PredicateType(t *Type) jen.Code {
	return jen.Qual(g.PredicatePkg(), t.Name)
}

// Graph returns the record graph.
func (g *JenniferGenerator) Graph() *Graph {
	return g.graph
}

// Pkg returns the output package name.
func (g *JenniferGenerator) Pkg() string {
	return g.pkg
}

// Verify JenniferGenerator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*JenniferGenerator)(nil)
