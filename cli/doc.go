// Package cli contains the command line interface for tmpl.
//
// # Usage
//
// Render a template against one or more argument contexts:
//
//	tmpl -c defaults.yaml -c site.yaml page.tmpl
//	tmpl render --set 'server.port=8000 + 80' -o out.conf server.tmpl
//
// Templates named by relative path are searched first in the working
// directory, then in each --include directory, then in the directories
// listed in TMPL_PATH.
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory; flags given on the command line override them.
// The init command writes the current global flag values to config.yaml.
// Keys name flags without dashes, and nested mappings join with '-':
//
//	log:
//	  level: debug
//	include:
//	  - ~/templates
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output when writing to a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tmpl .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the user cache directory)
package cli
