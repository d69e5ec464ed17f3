// Package cli contains the command line interface for scribe.
//
// # Usage
//
//	scribe render --out gen manifest.yaml
//	scribe check manifest.yaml
//	scribe list --format yaml manifest.yaml
//	scribe init
//
// Manifests are read from stdin when the argument is "-" or omitted.
//
// # Configuration File
//
// Flag defaults may be set in $XDG_CONFIG_HOME/scribe/config.yaml. Values
// are read from its "config" mapping, or from the top level when there is
// none. Flag names may use hyphens or underscores:
//
//	config:
//	  log_level: debug
//	  log-format: json
//
// Command-line flags override config file values. "scribe init" writes the
// file from the current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o scribe .
//
// It adds --pprof-mode (allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, trace) and --pprof-dir, which defaults to
// ~/.cache/scribe/pprof.
package cli
