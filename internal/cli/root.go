// Package cli is the command-line driver for harness programs.
//
// A test program registers its tests in a SetupFunc and hands it to Main:
//
//	func main() {
//		os.Exit(cli.Main("mytests", func(s *harness.Suite) error {
//			return s.RegisterFunc(testAddition, "test_addition")
//		}))
//	}
//
// Running the program without a subcommand is the same as "run".
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/chest/internal/harness"
)

// SetupFunc registers tests and hooks on a fresh Suite. It is called once
// per run iteration and once for list.
type SetupFunc func(s *harness.Suite) error

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string // Path to a YAML config file; empty uses defaults
}

// NewRootCommand creates the root command for a test program named name.
func NewRootCommand(name string, setup SetupFunc) *cobra.Command {
	opts := &RootOptions{}
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s - run registered tests", name),
		Long: `Run the tests registered by this program and print one PASS/FAIL line
per test followed by a summary.

Exit codes:
  0 - All tests passed
  1 - One or more assertions failed
  2 - Command error (bad flags, invalid config, internal harness error)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(runOpts, setup, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to YAML config file")
	addRunFlags(cmd, runOpts)

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts, setup))
	cmd.AddCommand(NewListCommand(opts, setup))

	return cmd
}

// Main runs the program with os.Args and returns the process exit code.
func Main(name string, setup SetupFunc) int {
	return Execute(NewRootCommand(name, setup), os.Args[1:], os.Stdout, os.Stderr)
}

// Execute runs cmd with args, printing errors to stderr, and returns the
// exit code.
func Execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := GetExitCode(err)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd.Name(), err)
	}
	return code
}
