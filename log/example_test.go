package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/scribe/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"))

	logger.Info("rendered", slog.String("path", "src/index.ts"))
	// Output: level=INFO msg=rendered path=src/index.ts
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none")).
		With(slog.String("component", "bind"))

	logger.Warn("refkey re-registered", slog.Uint64("key", 7))
	// Output: {"level":"WARN","msg":"refkey re-registered","component":"bind","key":7}
}
