package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/icodeploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpinnerSink shows a spinner on the error stream while a stage is running
// and writes info messages to the output stream
type SpinnerSink struct {
	out     io.Writer
	errOut  io.Writer
	spinner *spinner.Spinner
	title   cases.Caser
}

// NewSpinnerSink creates a spinner-based progress sink
func NewSpinnerSink(out, errOut io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(errOut))
	s.HideCursor = false

	return &SpinnerSink{
		out:     out,
		errOut:  errOut,
		spinner: s,
		title:   cases.Title(language.English),
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if !event.Spinner {
		if s.spinner.Active() {
			s.spinner.Stop()
		}
		return
	}

	s.spinner.Suffix = fmt.Sprintf(" %s %s", color.New(color.FgYellow).Sprint(s.title.String(event.Stage)), event.Message)
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Info prints a message on the output stream
func (s *SpinnerSink) Info(message string) {
	s.pause(func() {
		fmt.Fprintln(s.out, message)
	})
}

// Error prints a message on the error stream
func (s *SpinnerSink) Error(message string) {
	s.pause(func() {
		color.New(color.FgRed).Fprintln(s.errOut, message)
	})
}

// pause stops the spinner around fn so output isn't interleaved
func (s *SpinnerSink) pause(fn func()) {
	wasActive := s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	fn()

	if wasActive {
		s.spinner.Start()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
