package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/chest/internal/config"
	"github.com/roach88/chest/internal/harness"
	"github.com/roach88/chest/internal/report"
	"github.com/roach88/chest/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Color   string // auto | always | never; overrides the config file
	Measure bool   // print per-test timing; overrides the config file
	Repeat  int    // iterations; more than one enables flaky-test detection
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions, setup SetupFunc) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all registered tests",
		Long: `Run all registered tests in registration order.

With --repeat N the suite is rebuilt and run N times. Every iteration is
journaled in memory and tests that both passed and failed are listed as
flaky at the end.

Examples:
  demo run
  demo run --measure --color=always
  demo run --config chest.yaml --repeat 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, setup, cmd)
		},
	}
	addRunFlags(cmd, opts)

	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVar(&opts.Color, "color", string(config.ColorAuto), "colorize output (auto|always|never)")
	cmd.Flags().BoolVarP(&opts.Measure, "measure", "m", false, "print per-test timing")
	cmd.Flags().IntVarP(&opts.Repeat, "repeat", "n", 1, "run the suite N times and report flaky tests")
}

// iteration is the record of one suite run.
type iteration struct {
	outcome  harness.Outcome
	failures int
	entries  []harness.Entry
}

func runSuite(opts *RunOptions, setup SetupFunc, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts, cmd)
	if err != nil {
		return err
	}
	if opts.Repeat < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--repeat must be at least 1, got %d", opts.Repeat))
	}

	logger := newLogger(opts.Verbose, cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	if opts.Repeat == 1 {
		it, err := runOnce(cfg, setup, out, logger)
		if err != nil {
			return err
		}
		return outcomeError(it)
	}
	return runRepeated(cmd.Context(), cfg, setup, opts.Repeat, out, logger)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts *RunOptions, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("color") {
		mode, err := config.ParseColorMode(opts.Color)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid flag", err)
		}
		cfg.Color = mode
	}
	if cmd.Flags().Changed("measure") {
		cfg.Measure = opts.Measure
	}

	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return cfg, nil
}

// runOnce builds a fresh Suite, registers the program's tests, runs them
// and prints the report and summary to out.
func runOnce(cfg *config.Config, setup SetupFunc, out io.Writer, logger *slog.Logger) (iteration, error) {
	suiteOpts, err := cfg.SuiteOptions(logger)
	if err != nil {
		return iteration{}, WrapExitError(ExitCommandError, "invalid config", err)
	}
	rep := report.New(out, cfg.ReportOptions(out))
	s := harness.New(append(suiteOpts, harness.WithReporter(rep))...)
	defer s.Close()

	if setup != nil {
		if err := setup(s); err != nil {
			return iteration{}, WrapExitError(ExitCommandError, "setup failed", err)
		}
	}

	outcome := s.Run()
	s.Report()

	return iteration{
		outcome:  outcome,
		failures: s.Failures(),
		entries:  s.Entries(),
	}, nil
}

func runRepeated(ctx context.Context, cfg *config.Config, setup SetupFunc, n int, out io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	journal, err := store.OpenMemory()
	if err != nil {
		return WrapExitError(ExitCommandError, "open run journal", err)
	}
	defer journal.Close()

	failedRuns := 0
	for i := 1; i <= n; i++ {
		fmt.Fprintf(out, "=== run %d/%d\n", i, n)
		it, err := runOnce(cfg, setup, out, logger)
		if err != nil {
			return err
		}
		if _, err := journal.RecordRun(ctx, i, it.outcome, it.failures, it.entries); err != nil {
			return WrapExitError(ExitCommandError, "journal run", err)
		}
		switch it.outcome {
		case harness.InternalFailure:
			return outcomeError(it)
		case harness.AssertionFailed:
			failedRuns++
		}
	}

	flakes, err := journal.Flaky(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "query run journal", err)
	}
	printFlakes(out, flakes)

	if failedRuns > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d runs failed", failedRuns, n))
	}
	return nil
}

func printFlakes(w io.Writer, flakes []store.Flake) {
	if len(flakes) == 0 {
		fmt.Fprintln(w, "=== no flaky tests")
		return
	}
	fmt.Fprintln(w, "=== flaky")
	for _, f := range flakes {
		fmt.Fprintf(w, "%s: passed %d/%d runs\n", f.Name, f.Passed, f.Runs)
	}
}

// outcomeError maps a run outcome to the command's error.
func outcomeError(it iteration) error {
	switch it.outcome {
	case harness.Passed:
		return nil
	case harness.AssertionFailed:
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", it.failures))
	default:
		return WrapExitError(ExitCommandError, "harness error", it.outcome.Err())
	}
}
