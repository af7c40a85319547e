// Package profile provides optional runtime profiling for the tmpl command.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and [Profiler.Start] returns a no-op.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: dir, Quiet: true}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode, e.g.
// cpu.pprof, and can be inspected with "go tool pprof -http=: cpu.pprof".
// Rendering large templates under the "cpu" and "allocs" modes is the usual
// way to look at evaluator and parse cache costs.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
