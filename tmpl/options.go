package tmpl

import (
	"github.com/hashicorp/go-version"

	"github.com/ardnew/tmpl/log"
)

// DefaultMaxDepth is the default maximum nesting depth of scopes.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 64

// DefaultVersion is the contract version injected by
// [Template.OverrideArguments] unless [WithVersion] says otherwise.
var DefaultVersion = version.Must(version.NewVersion("v1"))

// options holds template configuration.
type options struct {
	maxDepth int
	version  *version.Version
	logger   log.Logger // structured logger (doesn't affect cache keys)
}

// Option configures template parsing or generation behavior.
type Option func(*options)

// WithMaxDepth sets the maximum nesting depth of scopes and foreach bodies.
// Non-positive values disable the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithVersion sets the contract version published under the "meta" key.
// A nil version restores [DefaultVersion].
func WithVersion(v *version.Version) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		version:  DefaultVersion,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.version == nil {
		o.version = DefaultVersion
	}

	return o
}
