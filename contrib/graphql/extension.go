package graphql

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lukesneeringer/selectable/compiler/gen"
)

type (
	// Extension hooks GraphQL schema generation into a generation run.
	// After the selection packages are written, it emits the schema
	// fragment and, when configured, updates the gqlgen.yml bindings.
	Extension struct {
		schemaPath string
		configPath string
		hooks      []gen.Hook
	}

	// ExtensionOption configures the Extension.
	ExtensionOption func(*Extension) error
)

// NewExtension creates a new Extension with the given options. The
// fragment is written to selectable.graphql unless WithSchemaPath
// overrides it.
func NewExtension(opts ...ExtensionOption) (*Extension, error) {
	e := &Extension{schemaPath: "selectable.graphql"}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.hooks = append(e.hooks, e.genSchema())
	return e, nil
}

// WithSchemaPath sets the path the schema fragment is written to.
func WithSchemaPath(path string) ExtensionOption {
	return func(e *Extension) error {
		if path == "" {
			return fmt.Errorf("graphql: empty schema path")
		}
		e.schemaPath = path
		return nil
	}
}

// WithConfigPath sets the gqlgen.yml path to maintain model bindings
// in. Without it the extension only writes the schema fragment.
func WithConfigPath(path string) ExtensionOption {
	return func(e *Extension) error {
		if path == "" {
			return fmt.Errorf("graphql: empty config path")
		}
		e.configPath = path
		return nil
	}
}

// Hooks returns the generation hooks of the extension, to be passed to
// gen.WithHooks.
func (e *Extension) Hooks() []gen.Hook { return e.hooks }

// genSchema wraps the generator: the fragment is emitted only after the
// selection packages were generated successfully.
func (e *Extension) genSchema() gen.Hook {
	return func(next gen.Generator) gen.Generator {
		return gen.GenerateFunc(func(g *gen.Graph) error {
			if err := next.Generate(g); err != nil {
				return err
			}
			return e.generate(g)
		})
	}
}

func (e *Extension) generate(g *gen.Graph) error {
	doc, err := SchemaFragment(g)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(e.schemaPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("graphql: create schema directory: %w", err)
		}
	}
	if err := os.WriteFile(e.schemaPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("graphql: write schema fragment: %w", err)
	}
	if e.configPath == "" {
		return nil
	}
	return e.updateConfig(g)
}

// updateConfig points the GraphQL object types at the record structs of
// the loaded package.
func (e *Extension) updateConfig(g *gen.Graph) error {
	cfg, err := LoadGQLGenConfig(e.configPath)
	if err != nil {
		return err
	}
	cfg.InjectBindings(g.Package, e.schemaPath)
	for _, n := range g.Nodes {
		cfg.SetModel(n.Name, g.Package+"."+n.Name)
	}
	return SaveGQLGenConfig(e.configPath, cfg)
}
