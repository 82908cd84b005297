// Package timing provides utilities for measuring and logging startup timing.
package timing

import (
	"os"

	"golang.org/x/term"

	"github.com/alexander-akhmetov/logspeed/logspeed"
)

var session *logspeed.Session

func init() {
	if os.Getenv("LOGSPEED_DEBUG_TIMING") == "1" {
		enable(
			logspeed.WithSink(logspeed.NewWriterSink(os.Stderr)),
			logspeed.WithColor(term.IsTerminal(int(os.Stderr.Fd()))),
		)
	}
}

func enable(opts ...logspeed.Option) {
	session = logspeed.New(opts...)
	session.Start("startup")
}

// Log records a timing checkpoint if LOGSPEED_DEBUG_TIMING=1
func Log(label string) {
	if session == nil {
		return
	}
	session.Checkpoint(label)
}

// Report prints the timing table if LOGSPEED_DEBUG_TIMING=1
func Report() {
	if session == nil {
		return
	}
	session.Report()
}
