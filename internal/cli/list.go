package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chest/internal/harness"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions, setup SetupFunc) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "Print registered test names without running them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTests(rootOpts, setup, cmd)
		},
	}
}

func listTests(opts *RootOptions, setup SetupFunc, cmd *cobra.Command) error {
	var suiteOpts []harness.Option
	if logger := newLogger(opts.Verbose, cmd.ErrOrStderr()); logger != nil {
		suiteOpts = append(suiteOpts, harness.WithLogger(logger))
	}
	s := harness.New(suiteOpts...)
	defer s.Close()

	if setup != nil {
		if err := setup(s); err != nil {
			return WrapExitError(ExitCommandError, "setup failed", err)
		}
	}

	out := cmd.OutOrStdout()
	for _, e := range s.Entries() {
		fmt.Fprintln(out, e.Name)
	}
	return nil
}
