package graphql

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukesneeringer/selectable/compiler/gen"
)

func TestExtension_WritesFragment(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "selectable.graphql")
	configPath := filepath.Join(dir, "gqlgen.yml")
	ext, err := NewExtension(WithSchemaPath(schemaPath), WithConfigPath(configPath))
	require.NoError(t, err)
	require.Len(t, ext.Hooks(), 1)

	g := testGraph(t)
	var ran bool
	generator := ext.Hooks()[0](gen.GenerateFunc(func(*gen.Graph) error {
		ran = true
		return nil
	}))
	require.NoError(t, generator.Generate(g))
	assert.True(t, ran)

	doc, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "type User {")

	cfg, err := LoadGQLGenConfig(configPath)
	require.NoError(t, err)
	assert.Contains(t, []string(cfg.SchemaFilename), schemaPath)
	assert.Contains(t, cfg.Autobind, "example.com/app/model")
	assert.Equal(t, StringList{"example.com/app/model.User"}, cfg.Models["User"].Model)
	assert.Equal(t, StringList{"example.com/app/model.Group"}, cfg.Models["Group"].Model)
	assert.Equal(t, StringList{"github.com/99designs/gqlgen/graphql.UUID"}, cfg.Models["UUID"].Model)
}

func TestExtension_SchemaOnly(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "nested", "schema.graphql")
	ext, err := NewExtension(WithSchemaPath(schemaPath))
	require.NoError(t, err)

	generator := ext.Hooks()[0](gen.GenerateFunc(func(*gen.Graph) error { return nil }))
	require.NoError(t, generator.Generate(testGraph(t)))

	_, err = os.Stat(schemaPath)
	require.NoError(t, err)
}

func TestExtension_GeneratorFailure(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "selectable.graphql")
	ext, err := NewExtension(WithSchemaPath(schemaPath))
	require.NoError(t, err)

	boom := errors.New("boom")
	generator := ext.Hooks()[0](gen.GenerateFunc(func(*gen.Graph) error { return boom }))
	require.ErrorIs(t, generator.Generate(testGraph(t)), boom)

	_, err = os.Stat(schemaPath)
	assert.True(t, os.IsNotExist(err))
}

func TestExtension_Options(t *testing.T) {
	_, err := NewExtension(WithSchemaPath(""))
	require.Error(t, err)
	_, err = NewExtension(WithConfigPath(""))
	require.Error(t, err)
}
