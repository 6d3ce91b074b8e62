package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	// Database drivers for DSN-based schema resolution.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lukesneeringer/selectable/compiler"
)

// GenerateOptions holds the flags of the generate command.
type GenerateOptions struct {
	Config        string
	Target        string
	Header        string
	Records       []string
	Templates     []string
	Workers       int
	Dialect       string
	DSN           string
	Snapshot      string
	WriteSnapshot bool
	Watch         bool
	Debounce      time.Duration
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [package]",
		Short: "Generate selection code for the records of a package",
		Long: `Generate loads the record declarations of the given package pattern
(default "."), validates them, and writes the selection packages next to
the record types. Configuration is read from selectable.yml when present;
flags override it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "configuration file (default selectable.yml if present)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "output directory (default: the record package directory)")
	cmd.Flags().StringVar(&opts.Header, "header", "", "header comment for generated files")
	cmd.Flags().StringSliceVar(&opts.Records, "records", nil, "generate only the named record types")
	cmd.Flags().StringSliceVar(&opts.Templates, "template", nil, "extension template files")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel render/write workers (default GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "dialect of the resolution DSN (mysql|postgres|sqlite)")
	cmd.Flags().StringVar(&opts.DSN, "resolve", "", "DSN of a database to resolve columns against")
	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "schema snapshot file for offline resolution")
	cmd.Flags().BoolVar(&opts.WriteSnapshot, "write-snapshot", false, "refresh the snapshot after a successful DSN resolution")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "watch the record package and regenerate on changes")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 250*time.Millisecond, "debounce window for --watch")

	return cmd
}

// loadConfig reads the configuration file, if any, and applies the flag
// overrides on top of it.
func loadConfig(cmd *cobra.Command, opts *GenerateOptions, args []string) (*compiler.Options, error) {
	path := opts.Config
	if path == "" {
		if _, err := os.Stat(compiler.DefaultConfigFile); err == nil {
			path = compiler.DefaultConfigFile
		}
	}
	conf := &compiler.Options{}
	if path != "" {
		loaded, err := compiler.LoadOptions(path)
		if err != nil {
			return nil, err
		}
		conf = loaded
	}
	if len(args) == 1 {
		conf.Path = args[0]
	}
	if conf.Path == "" {
		conf.Path = "."
	}
	flags := cmd.Flags()
	if flags.Changed("target") {
		conf.Target = opts.Target
	}
	if flags.Changed("header") {
		conf.Header = opts.Header
	}
	if flags.Changed("records") {
		conf.Records = opts.Records
	}
	if flags.Changed("template") {
		conf.Templates = opts.Templates
	}
	if flags.Changed("workers") {
		conf.Workers = opts.Workers
	}
	if flags.Changed("dialect") {
		conf.Resolve.Dialect = opts.Dialect
	}
	if flags.Changed("resolve") {
		conf.Resolve.DSN = opts.DSN
	}
	if flags.Changed("snapshot") {
		conf.Resolve.Snapshot = opts.Snapshot
	}
	if flags.Changed("write-snapshot") {
		conf.Resolve.WriteSnapshot = opts.WriteSnapshot
	}
	return conf, nil
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions, args []string) error {
	conf, err := loadConfig(cmd, opts, args)
	if err != nil {
		return &usageError{err}
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !opts.Watch {
		return compiler.Generate(ctx, conf)
	}

	// Watch mode: generate once, then regenerate on source changes until
	// interrupted.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := compiler.Generate(ctx, conf); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "selectable:", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s for changes\n", conf.Path)
	return compiler.Watch(ctx, conf.Path, opts.Debounce, func() {
		if err := compiler.Generate(ctx, conf); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "selectable:", err)
			return
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "regenerated")
	})
}
