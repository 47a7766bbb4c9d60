package baseview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so disabled logging skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by baseview and its platform
// adapters. By default no output is produced. Pass nil to restore the silent
// default.
//
// Levels used:
//   - [slog.LevelDebug]: per-window lifecycle transitions, close protocol steps
//   - [slog.LevelWarn]: dropped re-entrant dispatches, native teardown oddities
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current baseview logger. The open entry points hand it
// to the engine and platform adapters, so windows opened after a SetLogger
// call use the new configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
