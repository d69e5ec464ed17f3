package profile

// Tag names the build tag that enables profiling. It also names the
// subdirectory of the cache directory that receives profile data.
const Tag = "pprof"

// Stopper ends a profiling session and flushes its data.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress pkg/profile's own log lines
}

// Start begins the session described by p. Stop is always safe to call on
// the result, including when profiling is disabled or p.Mode is unknown.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return nop{}
	}

	return start(p)
}

// Enabled reports whether mode would start a real session in this build.
func Enabled(mode string) bool {
	for _, m := range Modes() {
		if m == mode {
			return true
		}
	}

	return false
}

type nop struct{}

func (nop) Stop() {}
