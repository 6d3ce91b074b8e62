package main

import (
	"github.com/spf13/cobra"
)

// usageError marks errors that exit with code 2 instead of 1.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// NewRootCommand creates the selectable root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "selectable",
		Short:         "Generate typed column selections for record types",
		Long:          "selectable generates ordered, table-qualified selection code for\nGo struct types marked with the selectable:record directive.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
	cmd.AddCommand(NewGenerateCommand())
	return cmd
}
