// Package log wraps [log/slog] with the handful of knobs the scribe tools
// expose on the command line: level, format, time layout, caller info, and
// colorized output.
//
// A [Logger] is an immutable value. [Logger.Wrap] and [Logger.With] return
// new loggers and never modify the receiver, so a Logger may be shared across
// goroutines without locking.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Info("rendered", slog.String("path", "src/index.ts"))
//
// The package-level functions ([Info], [Debug], and friends) write through a
// default logger that [Config] reconfigures. Context-unaware variants obtain
// their context from [DefaultContextProvider].
//
// In addition to the four [log/slog] levels, the package defines [LevelTrace]
// for per-node render and binder chatter.
package log
