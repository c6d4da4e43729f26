package project

import (
	"fmt"
	"io"
)

// Reporter receives human-readable progress messages during a run.
// Severity is conveyed by a glyph prefix inside the text itself.
// The generator calls Report synchronously and assumes nothing about
// which goroutine the implementation hands the message to; interactive
// front ends do their own thread-hopping.
type Reporter interface {
	Report(msg string)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(msg string)

func (f ReporterFunc) Report(msg string) { f(msg) }

// NewWriterReporter returns a Reporter that prints each message as a
// line to w. Used for headless console runs.
func NewWriterReporter(w io.Writer) Reporter {
	return ReporterFunc(func(msg string) {
		_, _ = fmt.Fprintln(w, msg)
	})
}

// NopReporter discards all messages.
func NopReporter() Reporter {
	return ReporterFunc(func(string) {})
}
