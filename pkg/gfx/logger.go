package gfx

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// nopHandler discards every record; Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(defaultLogger())
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// SetLogger replaces the logger shared by gfx and its backends. Windows pick
// up the logger when they are created. By default warnings and errors go to
// stderr; pass nil to silence all output.
//
// Levels used:
//   - [slog.LevelDebug]: per-frame diagnostics, ignored display failures
//   - [slog.LevelInfo]: lifecycle (profile selected, monitors enumerated)
//   - [slog.LevelWarn]: non-fatal problems (antialiasing unavailable, teardown failures)
//   - [slog.LevelError]: the redraw loop stopped because of a display failure
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
