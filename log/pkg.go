package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider supplies the context for logging calls that do not
// take one.
var DefaultContextProvider = context.Background

var defaultLog atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr, WithPretty(true))
	defaultLog.Store(&l)
}

// Default returns the package-level logger.
func Default() Logger { return *defaultLog.Load() }

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) { defaultLog.Store(&l) }

// Config reconfigures the package-level logger with opts applied on top of
// its current configuration.
func Config(opts ...Option) {
	SetDefault(Default().Wrap(opts...))
}

// With returns the package-level logger with attrs added.
func With(attrs ...slog.Attr) Logger { return Default().With(attrs...) }

// pkgSkip is the number of frames between logDepth and the caller of a
// package-level function.
const pkgSkip = 2

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, LevelTrace, msg, attrs, pkgSkip)
}

func Trace(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), LevelTrace, msg, attrs, pkgSkip)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, LevelDebug, msg, attrs, pkgSkip)
}

func Debug(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), LevelDebug, msg, attrs, pkgSkip)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, LevelInfo, msg, attrs, pkgSkip)
}

func Info(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), LevelInfo, msg, attrs, pkgSkip)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, LevelWarn, msg, attrs, pkgSkip)
}

func Warn(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), LevelWarn, msg, attrs, pkgSkip)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, LevelError, msg, attrs, pkgSkip)
}

func Error(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), LevelError, msg, attrs, pkgSkip)
}
