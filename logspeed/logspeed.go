// Package logspeed measures how long blocks of code take to run.
//
// A Session is started with a name, records labeled checkpoints, and prints
// a table of the time elapsed between checkpoints and since the start:
//
//	s := logspeed.New()
//	s.Start("MyFunction")
//	// ... code to measure
//	s.Checkpoint("Step 1")
//	// ... code to measure
//	s.Checkpoint("Step 2")
//	s.Report()
//
// Calling Start again resets the timing baseline but keeps the checkpoints
// already recorded, so they still appear in the next report. Call Clear to
// drop them. Reusing a label overwrites its timings in place.
//
// A Session is not safe for concurrent use.
package logspeed

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/alexander-akhmetov/logspeed/internal/debug"
)

// Session records checkpoints relative to a named start time.
type Session struct {
	name  string
	start time.Duration
	last  time.Duration

	records *records
	clock   Clock
	sink    Sink
	color   bool
	styles  styles
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source. Tests use it to supply a fake clock.
// A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSink sets where output lines are written. A nil sink is ignored.
func WithSink(sink Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithColor enables or disables ANSI styling of output lines.
func WithColor(enabled bool) Option {
	return func(s *Session) {
		s.color = enabled
	}
}

// New creates a Session. The clock starts immediately, so checkpoints
// recorded before Start are measured from construction time.
// By default output goes to stdout, colored when stdout is a terminal.
func New(opts ...Option) *Session {
	s := &Session{
		records: newRecords(),
		clock:   MonotonicClock(),
		sink:    NewWriterSink(os.Stdout),
		color:   term.IsTerminal(int(os.Stdout.Fd())),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.color {
		s.styles = newStyles()
	}
	s.start = s.clock()
	s.last = s.start
	return s
}

// Start names the session and resets its timing baseline.
// Previously recorded checkpoints are kept.
func (s *Session) Start(name string) {
	if n := s.records.len(); n > 0 && debug.Enabled() {
		debug.Logf("logspeed: restarting %q as %q with %d checkpoint(s) kept", s.name, name, n)
	}
	s.name = name
	s.start = s.clock()
	s.last = s.start
	s.sink.WriteLine(s.paint(s.styles.notice, "Logger started"))
}

// Checkpoint records the time since the previous checkpoint and since
// the session start under label, then prints them.
func (s *Session) Checkpoint(label string) {
	now := s.clock()
	rec := Record{
		Label:   label,
		Elapsed: now - s.last,
		Total:   now - s.start,
	}
	s.records.put(rec)
	s.last = now

	if !s.color {
		s.sink.WriteLine(FormatCheckpointLine(label, rec.Elapsed, rec.Total))
		return
	}
	s.sink.WriteLine(s.paint(s.styles.muted, "Checkpoint") + " " +
		s.paint(s.styles.label, label) + " " +
		s.paint(s.styles.muted, "- "+Millis(rec.Elapsed)+" ms (Total: "+Millis(rec.Total)+" ms)"))
}

// Report prints a table of all recorded checkpoints in the order they were
// first recorded, followed by the total time since the session start.
// It does not modify the session.
func (s *Session) Report() {
	total := s.clock() - s.start
	cols := DefaultColumns

	s.sink.WriteLine(TopBorder())
	if s.color {
		s.sink.WriteLine(s.paint(s.styles.muted, " Performance Report (") +
			s.paint(s.styles.name, s.name) + s.paint(s.styles.muted, ")"))
	} else {
		s.sink.WriteLine(FormatHeader(s.name))
	}
	s.sink.WriteLine(Separator())
	s.sink.WriteLine(s.paint(s.styles.muted, cols.Titles()))
	s.sink.WriteLine(Separator())
	for _, rec := range s.records.items {
		s.sink.WriteLine(s.paint(s.styles.row, cols.Row(rec.Label, rec.Elapsed, rec.Total)))
	}
	s.sink.WriteLine(Separator())
	s.sink.WriteLine(s.paint(s.styles.muted, cols.Footer(total)))
	s.sink.WriteLine(BottomBorder())
}

// Clear drops all recorded checkpoints without touching the timing baseline.
func (s *Session) Clear() {
	if debug.Enabled() {
		debug.Logf("logspeed: clearing %d checkpoint(s) from %q", s.records.len(), s.name)
	}
	s.records.clear()
}

// Name returns the name given to the last Start call.
func (s *Session) Name() string {
	return s.name
}

// Records returns a copy of the recorded checkpoints in report order.
func (s *Session) Records() []Record {
	return s.records.snapshot()
}
