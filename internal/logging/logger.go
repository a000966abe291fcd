// Package logging provides a thin global wrapper around zap.Logger so that
// the merge core and the CLI can log without threading a logger through
// every call. The design is intentionally minimal: a single atomic pointer
// and a handful of accessors.
package logging

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	l    atomic.Pointer[zap.Logger]
	live atomic.Bool
)

// Set installs logger as the global logger. A nil logger downgrades to
// zap.NewNop() rather than panicking, so tests can reset logging safely.
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
		live.Store(false)
	} else {
		live.Store(true)
	}
	l.Store(logger)
}

// Logger returns the globally registered *zap.Logger, defaulting to a nop
// logger so the merge core never needs a nil check before logging.
func Logger() *zap.Logger {
	if logger := l.Load(); logger != nil {
		return logger
	}
	nop := zap.NewNop()
	l.Store(nop)
	return nop
}

// Sugar is shorthand for Logger().Sugar().
func Sugar() *zap.SugaredLogger { return Logger().Sugar() }

// Initialized reports whether a real (non-nop) logger has been installed
// via Set.
func Initialized() bool { return live.Load() }
