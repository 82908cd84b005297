package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexander-akhmetov/logspeed/internal/config"
	"github.com/alexander-akhmetov/logspeed/internal/runner"
	"github.com/alexander-akhmetov/logspeed/internal/timing"
	"github.com/alexander-akhmetov/logspeed/logspeed"
)

var (
	runName      string
	runColor     string
	runShell     string
	runDir       string
	runKeepGoing bool
)

var runCmd = &cobra.Command{
	Use:   "run [command...]",
	Short: "Run commands and report how long each took",
	Long: `Run each command through the configured shell, one after another, and
record a checkpoint when it finishes. A report table is printed at the end,
also when a step fails.

Without arguments the steps configured in config.yaml are run.

Examples:
  logspeed run "go mod download" "go build ./..." "go test ./..."
  logspeed run --name release --keep-going "make lint" "make test"
  logspeed run --color never`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runName, "name", "n", "", "Session name shown in the report header")
	runCmd.Flags().StringVar(&runColor, "color", "", "Color output: auto, always, never")
	runCmd.Flags().StringVar(&runShell, "shell", "", "Shell used to run each command")
	runCmd.Flags().StringVarP(&runDir, "dir", "d", "", "Working directory for the commands (default: current directory)")
	runCmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false, "Continue with the remaining steps after a failure")
}

// stepRunner executes a single step.
type stepRunner interface {
	Run(ctx context.Context, step config.Step) error
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	err = cfg.ApplyCLIFlags(config.CLIFlags{
		Name:         runName,
		Color:        runColor,
		Shell:        runShell,
		KeepGoing:    runKeepGoing,
		KeepGoingSet: cmd.Flags().Changed("keep-going"),
	})
	if err != nil {
		return err
	}
	timing.Log("config loaded")

	steps := stepsFromArgs(args)
	if len(steps) == 0 {
		steps = cfg.Steps
	}
	if len(steps) == 0 {
		return fmt.Errorf("no steps to run. Usage: logspeed run \"command\" ... or add steps to config.yaml")
	}

	out := cmd.OutOrStdout()
	sink := logspeed.NewWriterSink(out)
	session := logspeed.New(
		logspeed.WithSink(sink),
		logspeed.WithColor(cfg.UseColor(isTerminal(out))),
	)

	r := runner.New(cfg.Shell)
	r.Dir = runDir
	r.Stdout = out
	r.Stderr = cmd.ErrOrStderr()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	err = runSteps(ctx, session, r, cfg.Name, steps, cfg.KeepGoing)
	timing.Log("steps finished")
	return errors.Join(err, sink.Err())
}

// runSteps times each step as one checkpoint and always finishes with a report.
// Failed steps are labeled with a "(failed)" suffix.
func runSteps(ctx context.Context, session *logspeed.Session, r stepRunner, name string, steps []config.Step, keepGoing bool) error {
	session.Start(name)

	var errs []error
	for _, step := range steps {
		err := r.Run(ctx, step)
		label := step.Label()
		if err != nil {
			label += " (failed)"
			errs = append(errs, err)
		}
		session.Checkpoint(label)

		if err != nil && (!keepGoing || ctx.Err() != nil) {
			break
		}
	}

	session.Report()
	return errors.Join(errs...)
}

func stepsFromArgs(args []string) []config.Step {
	steps := make([]config.Step, 0, len(args))
	for _, arg := range args {
		steps = append(steps, config.Step{Run: arg})
	}
	return steps
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
