package logspeed

import (
	"fmt"
	"io"
)

// Sink receives pre-formatted output lines in call order.
type Sink interface {
	WriteLine(line string)
}

// WriterSink writes each line to an io.Writer followed by a newline.
// After the first write error it drops further lines; the error is kept
// for the caller to inspect with Err.
type WriterSink struct {
	w   io.Writer
	err error
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink wraps w as a Sink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes line and a trailing newline.
func (s *WriterSink) WriteLine(line string) {
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		s.err = fmt.Errorf("write line: %w", err)
	}
}

// Err returns the first write error, if any.
func (s *WriterSink) Err() error {
	return s.err
}
