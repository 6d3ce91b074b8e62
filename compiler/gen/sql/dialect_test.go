package sql

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/compiler/gen"
)

func TestDialect_Name(t *testing.T) {
	d, _ := testDialect(t)
	assert.Equal(t, "sql", d.Name())
}

func TestGenerate(t *testing.T) {
	g := testGraph(t)
	g.Target = t.TempDir()
	require.NoError(t, Generate(g))

	for _, name := range []string{
		filepath.Join("user", "user.go"),
		filepath.Join("user", "where.go"),
		"user_select.go",
		filepath.Join("event", "event.go"),
		filepath.Join("event", "where.go"),
		"event_select.go",
		filepath.Join("predicate", "predicate.go"),
	} {
		content, err := os.ReadFile(filepath.Join(g.Target, name))
		require.NoError(t, err, "missing %s", name)
		assert.Contains(t, string(content), "Code generated by selectable. DO NOT EDIT.", name)
	}
}

func TestGenerate_MissingTarget(t *testing.T) {
	g := testGraph(t)
	g.Target = ""
	err := Generate(g)
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerate_Hooks(t *testing.T) {
	g := testGraph(t)
	g.Target = t.TempDir()

	var ran bool
	g.Hooks = []gen.Hook{
		func(next gen.Generator) gen.Generator {
			return gen.GenerateFunc(func(g *gen.Graph) error {
				ran = true
				return next.Generate(g)
			})
		},
	}
	require.NoError(t, Generate(g))
	assert.True(t, ran)

	_, err := os.Stat(filepath.Join(g.Target, "user_select.go"))
	require.NoError(t, err)
}

func TestGenerate_CustomHeader(t *testing.T) {
	g := testGraph(t)
	g.Target = t.TempDir()
	g.Header = "Code generated by selectable (custom build). DO NOT EDIT."
	require.NoError(t, Generate(g))

	content, err := os.ReadFile(filepath.Join(g.Target, "user_select.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "custom build")
}
