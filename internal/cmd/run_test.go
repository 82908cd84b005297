package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/logspeed/internal/config"
	"github.com/alexander-akhmetov/logspeed/logspeed"
	"github.com/alexander-akhmetov/logspeed/logspeed/logspeedtest"
)

// fakeRunner advances the clock by each step's duration and fails the listed steps.
type fakeRunner struct {
	clock     *logspeedtest.FakeClock
	durations map[string]time.Duration
	failing   map[string]bool
	ran       []string
}

func (f *fakeRunner) Run(_ context.Context, step config.Step) error {
	f.ran = append(f.ran, step.Run)
	f.clock.Advance(f.durations[step.Run])
	if f.failing[step.Run] {
		return errors.New(step.Run + " failed")
	}
	return nil
}

func newFakeSession() (*logspeed.Session, *logspeedtest.FakeClock, *logspeedtest.Recorder) {
	clock := &logspeedtest.FakeClock{}
	rec := &logspeedtest.Recorder{}
	s := logspeed.New(logspeed.WithClock(clock.Clock()), logspeed.WithSink(rec), logspeed.WithColor(false))
	return s, clock, rec
}

func TestRunCmdDefinition(t *testing.T) {
	assert.Equal(t, "run [command...]", runCmd.Use)
	assert.NotEmpty(t, runCmd.Short)
	assert.NotEmpty(t, runCmd.Long)
}

func TestRunCmdFlags(t *testing.T) {
	flags := runCmd.Flags()

	nameFlag := flags.Lookup("name")
	require.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)

	keepGoingFlag := flags.Lookup("keep-going")
	require.NotNil(t, keepGoingFlag)
	assert.Equal(t, "k", keepGoingFlag.Shorthand)
	assert.Equal(t, "false", keepGoingFlag.DefValue)

	require.NotNil(t, flags.Lookup("color"))
	require.NotNil(t, flags.Lookup("shell"))
	require.NotNil(t, flags.Lookup("dir"))
}

func TestRunSteps(t *testing.T) {
	s, clock, rec := newFakeSession()
	r := &fakeRunner{
		clock:     clock,
		durations: map[string]time.Duration{"a": 10 * time.Millisecond, "b": 20 * time.Millisecond},
	}
	steps := []config.Step{{Name: "first", Run: "a"}, {Run: "b"}}

	err := runSteps(context.Background(), s, r, "build", steps, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, r.ran)
	assert.Equal(t, []logspeed.Record{
		{Label: "first", Elapsed: 10 * time.Millisecond, Total: 10 * time.Millisecond},
		{Label: "b", Elapsed: 20 * time.Millisecond, Total: 30 * time.Millisecond},
	}, s.Records())

	lines := rec.Lines()
	assert.Equal(t, "Logger started", lines[0])
	assert.Contains(t, lines, " Performance Report (build)")
	assert.Contains(t, lines[len(lines)-2], "30.00 ms")
}

func TestRunStepsStopsOnFailure(t *testing.T) {
	s, clock, rec := newFakeSession()
	r := &fakeRunner{
		clock:     clock,
		durations: map[string]time.Duration{"a": time.Millisecond, "b": 2 * time.Millisecond},
		failing:   map[string]bool{"b": true},
	}
	steps := []config.Step{{Run: "a"}, {Run: "b"}, {Run: "c"}}

	err := runSteps(context.Background(), s, r, "ci", steps, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b failed")

	assert.Equal(t, []string{"a", "b"}, r.ran)
	records := s.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "b (failed)", records[1].Label)
	assert.Equal(t, "└"+strings.Repeat("─", 60)+"┘", rec.Lines()[len(rec.Lines())-1])
}

func TestRunStepsKeepGoing(t *testing.T) {
	s, clock, _ := newFakeSession()
	r := &fakeRunner{
		clock:   clock,
		failing: map[string]bool{"a": true, "c": true},
	}
	steps := []config.Step{{Run: "a"}, {Run: "b"}, {Run: "c"}}

	err := runSteps(context.Background(), s, r, "ci", steps, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a failed")
	assert.Contains(t, err.Error(), "c failed")

	assert.Equal(t, []string{"a", "b", "c"}, r.ran)
	var labels []string
	for _, rec := range s.Records() {
		labels = append(labels, rec.Label)
	}
	assert.Equal(t, []string{"a (failed)", "b", "c (failed)"}, labels)
}

func TestRunStepsKeepGoingStopsWhenCanceled(t *testing.T) {
	s, clock, _ := newFakeSession()
	r := &fakeRunner{clock: clock, failing: map[string]bool{"a": true}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runSteps(ctx, s, r, "ci", []config.Step{{Run: "a"}, {Run: "b"}}, true)
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, r.ran)
}

func TestStepsFromArgs(t *testing.T) {
	assert.Empty(t, stepsFromArgs(nil))
	assert.Equal(t, []config.Step{{Run: "make"}, {Run: "make test"}}, stepsFromArgs([]string{"make", "make test"}))
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"LOGSPEED_NAME", "LOGSPEED_COLOR", "LOGSPEED_SHELL", "LOGSPEED_KEEP_GOING"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func resetRunFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		runName, runColor, runShell, runDir, runKeepGoing = "", "", "", "", false
		for _, name := range []string{"name", "color", "shell", "dir", "keep-going"} {
			runCmd.Flags().Lookup(name).Changed = false
		}
	})
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	isolateConfig(t)
	resetRunFlags(t)

	out, err := executeRoot(t, "run", "--name", "e2e", "--color", "never", "true", "echo hi")
	require.NoError(t, err)

	assert.Contains(t, out, "Logger started")
	assert.Contains(t, out, "hi\n")
	assert.Contains(t, out, " Performance Report (e2e)")
	assert.Contains(t, out, "\n│true ")
	assert.Contains(t, out, "\n│echo hi ")
	assert.Contains(t, out, " Total time taken:")
}

func TestRunCommandFailure(t *testing.T) {
	isolateConfig(t)
	resetRunFlags(t)

	out, err := executeRoot(t, "run", "--color", "never", "exit 2", "echo never")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "exit 2" exited with code 2`)

	assert.Contains(t, out, "│exit 2 (failed)")
	assert.NotContains(t, out, "never\n")
	assert.Contains(t, out, " Total time taken:")
}

func TestRunCommandUsesConfiguredSteps(t *testing.T) {
	dir := isolateConfig(t)
	resetRunFlags(t)

	local := dir + "/.logspeed"
	require.NoError(t, mkdirWithConfig(local, "name: from-config\ncolor: never\nsteps:\n  - name: greet\n    run: echo configured\n"))

	out, err := executeRoot(t, "run")
	require.NoError(t, err)

	assert.Contains(t, out, "configured\n")
	assert.Contains(t, out, " Performance Report (from-config)")
	assert.Contains(t, out, "\n│greet ")
}

func TestRunCommandNoSteps(t *testing.T) {
	isolateConfig(t)
	resetRunFlags(t)

	_, err := executeRoot(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no steps to run")
}

func TestRunCommandInvalidColor(t *testing.T) {
	isolateConfig(t)
	resetRunFlags(t)

	_, err := executeRoot(t, "run", "--color", "purple", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestRunCommandOutputFailure(t *testing.T) {
	isolateConfig(t)
	resetRunFlags(t)

	var stderr bytes.Buffer
	rootCmd.SetOut(brokenWriter{})
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"run", "--color", "never", "true"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write line: stdout closed")
	assert.Contains(t, stderr.String(), "stdout closed")
}
