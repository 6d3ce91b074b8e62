package graphql

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/lukesneeringer/selectable/compiler/gen"
)

var (
	camel = gen.Funcs["camel"].(func(string) string)
	snake = gen.Funcs["snake"].(func(string) string)
)

// gqlFieldName returns the GraphQL field name of a record field: the
// camelCase form of the Go struct field name ("CreatedAt" becomes
// "createdAt"), so gqlgen's autobind matches it back to the struct.
func gqlFieldName(f *gen.Field) string {
	return camel(snake(f.StructField()))
}

// fieldType returns the GraphQL type name of a record field. Strings,
// enums and bytes map to String; the custom scalars (Time, UUID, JSON)
// are declared at the top of the fragment when used.
func fieldType(f *gen.Field) string {
	switch {
	case f.IsBool():
		return "Boolean"
	case f.Type.Type.Float():
		return "Float"
	case f.Type.Type.Integer():
		return "Int"
	case f.IsTime():
		return "Time"
	case f.IsUUID():
		return "UUID"
	case f.IsJSON():
		return "JSON"
	default:
		return "String"
	}
}

// customScalars are the fragment-declared scalar types, in the order
// they are emitted.
var customScalars = []string{"Time", "UUID", "JSON"}

// SchemaFragment renders the GraphQL schema fragment of the graph: one
// object type per record, fields in declaration order, camelCase field
// names. Optional record fields become nullable GraphQL fields. The
// fragment is validated with gqlparser before it is returned, so a
// fragment that would break the consuming gqlgen project fails here
// instead.
func SchemaFragment(g *gen.Graph) (string, error) {
	var b strings.Builder

	used := make(map[string]bool)
	for _, n := range g.Nodes {
		for _, f := range n.Fields {
			used[fieldType(f)] = true
		}
	}
	for _, s := range customScalars {
		if used[s] {
			fmt.Fprintf(&b, "scalar %s\n", s)
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	for i, n := range g.Nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "type %s {\n", n.Name)
		for _, f := range n.Fields {
			typ := fieldType(f)
			if !f.Optional {
				typ += "!"
			}
			fmt.Fprintf(&b, "  %s: %s\n", gqlFieldName(f), typ)
		}
		b.WriteString("}\n")
	}

	doc := b.String()
	if err := validateFragment(doc); err != nil {
		return "", err
	}
	return doc, nil
}

// validateFragment parses and validates the fragment as a standalone
// schema document.
func validateFragment(doc string) error {
	// A bare Query type keeps the validator happy; the consuming project
	// declares the real one.
	src := &ast.Source{Name: "selectable.graphql", Input: doc + "\ntype Query\n"}
	if _, err := gqlparser.LoadSchema(src); err != nil {
		return fmt.Errorf("graphql: invalid schema fragment: %w", err)
	}
	return nil
}
