// Package cmdlog builds the loggers used by the modio CLI and prints pretty
// status lines to the console
package cmdlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jwalton/gchalk"
)

// New returns a logger writing timestamped lines to w. Debug output is only
// enabled when verbose is set
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "modio",
	})
}

// Progress logs how long an operation took
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress starts a new Progress now
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Done logs msg with the elapsed time
func (p *Progress) Done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context carrying l
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger of ctx or the default logger
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Headline prints a bold cyan line
func Headline(s string) {
	fmt.Println(gchalk.Bold(gchalk.Cyan(s)))
}

// Warn prints a yellow warning
func Warn(s string) {
	fmt.Fprintln(os.Stderr, gchalk.Bold(gchalk.Yellow(s)))
}

// Success prints a green line prefixed with a check mark
func Success(s string) {
	fmt.Println(gchalk.Green("✓ ") + s)
}

// Dim prints a gray line
func Dim(s string) {
	fmt.Println(gchalk.Gray(s))
}
