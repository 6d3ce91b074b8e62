package gen

import (
	"errors"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the import path of the package declaring the records.
// For example: "github.com/org/project/model".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// Generated files are written next to the record declarations so the
// Select entry points can attach to the record types.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks wrap the generator and run around the generation.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithTemplates adds user extension templates, each rendered once per
// run with the graph as data.
func WithTemplates(templates ...*Template) Option {
	return func(c *Config) error {
		for _, t := range templates {
			if t == nil {
				return NewConfigError("Templates", nil, "template cannot be nil")
			}
		}
		c.Templates = append(c.Templates, templates...)
		return nil
	}
}

// WithWorkers caps the number of parallel render and write workers.
// Zero keeps the default (GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "worker count cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading record packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithGenerator sets a custom code generator.
// If not set, generation defaults to the SQL selection generator.
func WithGenerator(g Generator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("Generator", nil, "generator cannot be nil")
		}
		c.Generator = g
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
