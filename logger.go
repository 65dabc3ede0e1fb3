package shade

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent    = slog.New(slog.DiscardHandler)
	loggerPtr atomic.Pointer[slog.Logger]
)

func init() {
	loggerPtr.Store(silent)
}

// SetLogger configures the logger shared by shade and its sub-packages.
// Nothing is logged until a logger is set. Pass nil to silence it again.
// SetLogger is safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: per-draw detail (band counts, shader cache hits)
//   - [slog.LevelInfo]: shader compilation and GPU pipeline creation
//   - [slog.LevelWarn]: a singular gradient matrix replaced by identity
//
// Example:
//
//	shade.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
