//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the sorted list of supported profiling modes.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// option appends pkg/profile settings derived from a Profiler.
type option func(Profiler, []func(*profile.Profile)) []func(*profile.Profile)

func withMode(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if fn, ok := mode[p.Mode]; ok {
		opts = append(opts, fn)
	}

	return opts
}

func withPath(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	return opts
}

func withQuiet(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}

func start(p Profiler) Stopper {
	var opts []func(*profile.Profile)

	for _, fn := range []option{withMode, withPath, withQuiet} {
		opts = fn(p, opts)
	}

	// pkg/profile installs its own SIGINT hook, which would race the
	// command's context cancellation.
	opts = append(opts, profile.NoShutdownHook)

	return profile.Start(opts...)
}
