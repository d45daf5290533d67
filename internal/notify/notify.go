// Package notify is the console's user-facing notification surface: the Go
// rendering of the toast messages every request failure and auth action
// produces.
package notify

import (
	"fmt"
	"io"
	"os"
)

// Notifier shows short user-visible messages. Implementations must be safe
// for concurrent use.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer notifies by writing lines to an io.Writer, stderr by default, so
// notifications never mix with command output on stdout.
type Writer struct {
	Out io.Writer
}

// NewStderr returns a Notifier writing to stderr.
func NewStderr() *Writer {
	return &Writer{Out: os.Stderr}
}

func (w *Writer) Success(msg string) {
	fmt.Fprintln(w.Out, msg)
}

func (w *Writer) Error(msg string) {
	fmt.Fprintln(w.Out, "error: "+msg)
}

// Discard swallows all notifications. Used in tests.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
