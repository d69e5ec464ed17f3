// Package profile starts an optional [github.com/pkg/profile] session around
// a scribe invocation.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	scribe --pprof-mode cpu render manifest.yaml
//	go tool pprof -http=: ~/.cache/scribe/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op stopper, so callers need no build constraints of their own.
package profile
