package tmpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tmpl/log"
)

// frame holds the state shared by one evaluation of a template tree.
// Alias bindings are passed per call, never stored here.
type frame struct {
	ctx      context.Context
	root     Value
	logger   log.Logger
	maxDepth int
	depth    int
}

// generate evaluates el as the root scope.
func (f *frame) generate(el Element) (string, error) {
	switch e := el.(type) {
	case nil:
		return "", nil

	case *Scope:
		return f.scope(e.Elements, nil)

	default:
		return f.scope([]Element{el}, nil)
	}
}

// lookup resolves path through the alias table and the context.
func (f *frame) lookup(path Path, aliases *redirects) (string, bool) {
	expanded, ok := aliases.expand(path)
	if !ok {
		f.logger.TraceContext(f.ctx, "alias cycle",
			slog.String("path", path.String()),
			slog.Int("aliases", aliases.len()))

		return "", false
	}

	return resolve(f.root, expanded)
}

// scope evaluates elems in order. The first failing element fails the whole
// scope and its partial output is dropped.
func (f *frame) scope(elems []Element, aliases *redirects) (string, error) {
	f.depth++
	defer func() { f.depth-- }()

	if f.maxDepth > 0 && f.depth > f.maxDepth+1 {
		return "", ErrMaxDepthExceeded.With(slog.Int("max_depth", f.maxDepth))
	}

	var buf strings.Builder

	for _, el := range elems {
		switch e := el.(type) {
		case *Ignored:

		case *StringLiteral:
			buf.WriteString(e.Value)

		case *Variable:
			s, _ := f.lookup(e.Path, aliases)
			buf.WriteString(s)

		case *Requires:
			if _, ok := f.lookup(e.Path, aliases); !ok {
				err := &GenerateError{Path: e.Path, Pos: e.Position}

				f.logger.TraceContext(f.ctx, "requires failed",
					slog.Any("error", err))

				return "", err
			}

		case *Scope:
			s, err := f.scope(e.Elements, aliases)
			if err != nil {
				if !absorb(err) {
					return "", err
				}

				continue
			}

			buf.WriteString(s)

		case *Foreach:
			s, err := f.foreach(e, aliases)
			if err != nil {
				return "", err
			}

			buf.WriteString(s)

		default:
			return "", ErrInvalidElement.With(
				slog.String("type", fmt.Sprintf("%T", el)))
		}
	}

	return buf.String(), nil
}

// foreach evaluates the body once per item of the source path, binding the
// alias to each item in turn. A failing iteration writes nothing.
func (f *frame) foreach(e *Foreach, aliases *redirects) (string, error) {
	base, ok := aliases.expand(e.Variable)
	if !ok {
		return "", nil
	}

	node, ok := descend(f.root, base)
	if !ok {
		return "", nil
	}

	switch node.(type) {
	case Object, Array:
	default:
		return "", nil
	}

	var (
		buf   strings.Builder
		count int
	)

	for n := 0; ; n++ {
		item, ok := child(node, strconv.Itoa(n))
		if !ok {
			break
		}

		if _, ok := render(item); !ok {
			break
		}

		count++

		s, err := f.scope(e.Body, aliases.with(e.Value, base.Index(n)))
		if err != nil {
			if !absorb(err) {
				return "", err
			}

			continue
		}

		buf.WriteString(s)
	}

	f.logger.TraceContext(f.ctx, "foreach complete",
		slog.String("value", e.Value),
		slog.String("variable", base.String()),
		slog.Int("iterations", count))

	return buf.String(), nil
}

// absorb reports whether err is a scope rejection that a parent scope
// treats as an element writing nothing.
func absorb(err error) bool {
	var gerr *GenerateError

	return errors.As(err, &gerr)
}
