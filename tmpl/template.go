package tmpl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
)

// Template pairs a parsed element tree with an argument context.
//
// A Template may be rendered by several goroutines at once provided its
// context is not modified concurrently.
type Template struct {
	elem Element
	ctx  Value
	opts options
}

// New returns a template with an empty tree and an empty [Object] context.
func New(opts ...Option) *Template {
	return &Template{
		elem: &Scope{Position: Position{Line: 1, Column: 1}},
		ctx:  Object{},
		opts: makeOptions(opts...),
	}
}

// From parses source into a new template. On failure the template is nil
// and the error is a [*ParseError], or wraps [ErrMaxDepthExceeded].
func From(source string, opts ...Option) (*Template, error) {
	t := New(opts...)

	root, err := parse(context.Background(), source, t.opts)
	if err != nil {
		return nil, err
	}

	t.elem = root

	return t, nil
}

// FromReader reads template source from r into a new template. Identical
// sources share one cached tree; see [ParseReader].
func FromReader(ctx context.Context, r io.Reader, opts ...Option) (*Template, error) {
	t := New(opts...)

	root, err := ParseReader(ctx, r, opts...)
	if err != nil {
		return nil, err
	}

	t.elem = root

	return t, nil
}

// SetContext attaches the argument context. The template takes ownership of
// v: [Template.SetArgument] and [Template.OverrideArguments] modify it in
// place. A nil v is stored as [Null].
func (t *Template) SetContext(v Value) {
	if v == nil {
		v = Null{}
	}

	t.ctx = v
}

// Context returns the argument context.
func (t *Template) Context() Value { return t.ctx }

// SetTemplate replaces the element tree. A nil el renders nothing.
func (t *Template) SetTemplate(el Element) { t.elem = el }

// Element returns the element tree.
func (t *Template) Element() Element { return t.elem }

// Generate renders the template against its context.
// If a requires gate rejects the root scope, the output is empty and the
// error is a [*GenerateError] naming the undefined path.
func (t *Template) Generate(ctx context.Context) (string, error) {
	f := &frame{
		ctx:      ctx,
		root:     t.ctx,
		logger:   t.opts.logger,
		maxDepth: t.opts.maxDepth,
	}

	out, err := f.generate(t.elem)
	if err != nil {
		t.opts.logger.TraceContext(ctx, "generate failed",
			slog.Any("error", err))

		return "", err
	}

	t.opts.logger.TraceContext(ctx, "generate complete",
		slog.Int("output_bytes", len(out)))

	return out, nil
}

// GetArgument resolves path against the context with no alias bindings.
// It reports false if the path is undefined, which differs from a defined
// path rendering as the empty string.
func (t *Template) GetArgument(path Path) (string, bool) {
	var aliases *redirects

	expanded, ok := aliases.expand(path)
	if !ok {
		return "", false
	}

	return resolve(t.ctx, expanded)
}

// OverrideArguments injects the default arguments: "true" is set to "true",
// "false" is removed, and "meta" describes the contract version. A context
// that is not an [Object] is replaced by an empty one. Running it again has
// no further effect.
func (t *Template) OverrideArguments() {
	obj, ok := t.ctx.(Object)
	if !ok || obj == nil {
		obj = Object{}
		t.ctx = obj
	}

	flag := "v" + strconv.Itoa(t.opts.version.Segments()[0])

	obj["true"] = String("true")
	delete(obj, "false")
	obj["meta"] = Object{
		"version": String(flag),
		flag:      String("true"),
	}
}
