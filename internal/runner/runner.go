// Package runner executes timed steps through a shell.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alexander-akhmetov/logspeed/internal/config"
	"github.com/alexander-akhmetov/logspeed/internal/debug"
)

// waitDelay bounds how long Run waits for output pipes after the step's
// context is canceled and the shell is killed.
const waitDelay = 2 * time.Second

// StepError is returned when a step exits unsuccessfully.
type StepError struct {
	Step     config.Step
	ExitCode int // -1 if the process did not exit normally
	Err      error
}

func (e *StepError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("step %q exited with code %d", e.Step.Label(), e.ExitCode)
	}
	return fmt.Sprintf("step %q failed: %v", e.Step.Label(), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Runner runs steps as `<Shell> -c <run>`, streaming output to Stdout and Stderr.
type Runner struct {
	Shell  string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Runner writing to the process stdout and stderr.
func New(shell string) *Runner {
	return &Runner{
		Shell:  shell,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes a single step and waits for it to finish.
func (r *Runner) Run(ctx context.Context, step config.Step) error {
	debug.Logf("runner: %s -c %q", r.Shell, step.Run)

	cmd := exec.CommandContext(ctx, r.Shell, "-c", step.Run) //nolint:gosec // user-provided step
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		stepErr := &StepError{Step: step, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stepErr.ExitCode = exitErr.ExitCode()
		}
		debug.Logf("runner: %s", stepErr)
		return stepErr
	}
	return nil
}
