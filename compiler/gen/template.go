package gen

import (
	"text/template"
)

// Template is a user-provided extension template, executed once per
// generation run with the Graph as data. Its output is formatted and
// written next to the generated files as {name}.go.
type Template struct {
	name string
	tmpl *template.Template
}

// Funcs exposes the naming helpers to extension templates.
var Funcs = template.FuncMap{
	"snake":    snake,
	"pascal":   pascal,
	"camel":    camel,
	"receiver": receiver,
	"plural":   plural,
}

// NewTemplate creates an empty extension template with the standard
// helper functions attached.
func NewTemplate(name string) *Template {
	return &Template{
		name: name,
		tmpl: template.New(name).Funcs(Funcs),
	}
}

// Parse parses text into the template.
func (t *Template) Parse(text string) (*Template, error) {
	tmpl, err := t.tmpl.Parse(text)
	if err != nil {
		return nil, err
	}
	t.tmpl = tmpl
	return t, nil
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// MustParse is a helper that wraps a (*Template, error) pair and panics
// on error.
//
//	tmpl := gen.MustParse(gen.NewTemplate("stats").Parse(text))
func MustParse(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}
