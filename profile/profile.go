package profile

import "slices"

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the output directory. Empty means the working directory
	// chosen by pkg/profile.
	Path string
	// Quiet suppresses the start and stop messages of pkg/profile.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Enabled reports whether p names a mode supported by this build.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && slices.Contains(Modes(), p.Mode)
}

// Start begins profiling and returns the handle used to stop it.
//
// If the pprof build tag is unset or p is not [Profiler.Enabled], Start
// returns a no-op. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
