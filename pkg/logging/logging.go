// Package logging holds the logger shared by all wirecam packages.
//
// Libraries log only at debug level: per-frame stats from the render
// pipeline, mesh loads, and geometry that loaders skip. Nothing is printed
// until the CLI calls SetLogger. It does that for --debug, and only with
// --log-file while the terminal view is running, since the view owns
// stdout and stderr would tear the frame.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so slog never
// builds the record in the first place.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

// SetLogger installs l for all packages. nil restores the silent default.
// Frames render on worker goroutines, so the swap is atomic.
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

// Logger returns the installed logger, or a silent one.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
