// Package cmd implements the tmpl subcommands: render, get, check, fmt,
// init and repl.
//
// Commands that need an argument context embed [Inputs], which loads YAML
// or JSON context files, injects the default arguments and applies
// --set and --set-string assignments in that order.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// of the YAML configuration file written by [Init].
	ConfigIdentifier = "config"
)
