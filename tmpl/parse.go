package tmpl

import (
	"context"
	"log/slog"
	"strconv"
)

// Keywords reserved by the grammar.
const (
	KeywordForeach  = "foreach"
	KeywordRequires = "requires"
)

// Parse parses template source into its root [Scope].
// The entire input must be consumed; any remainder is a [*ParseError].
func Parse(ctx context.Context, source string, opts ...Option) (*Scope, error) {
	o := makeOptions(opts...)

	return parse(ctx, source, o)
}

func parse(ctx context.Context, source string, o options) (*Scope, error) {
	p := newParser(source, o)

	root := &Scope{Position: p.position()}

	elems, err := p.parseScope(false)
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed",
			slog.Int("source_bytes", len(source)),
			slog.String("error", err.Error()))

		return nil, err
	}

	root.Elements = elems

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("source_bytes", len(source)),
		slog.Int("elements", len(elems)))

	return root, nil
}

// ParsePath parses the dotted form of a path, e.g. "items.0.name".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, ErrInvalidPath.With(slog.String("path", s))
	}

	p := newParser(s, makeOptions())

	path, err := p.parsePath()
	if err == nil && !p.eof() {
		err = p.fail(p.position(), "unexpected character "+strconv.QuoteRune(p.peek()))
	}

	if err != nil {
		return nil, ErrInvalidPath.Wrap(err).With(slog.String("path", s))
	}

	return path, nil
}

// MustParsePath is like [ParsePath] but panics on error. It is intended for
// paths known at compile time.
func MustParsePath(s string) Path {
	path, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return path
}

// parseScope parses the elements of a scope. A nested scope stops before its
// closing ')' and leaves it for the caller; the root scope must reach EOF.
func (p *parser) parseScope(nested bool) ([]Element, error) {
	elems := make([]Element, 0)

	for {
		if p.eof() {
			return elems, nil
		}

		pos := p.position()

		switch {
		case p.peek() == '(':
			scope, err := p.parseSubScope()
			if err != nil {
				return nil, err
			}

			elems = append(elems, scope)

			continue

		case p.peek() == ')':
			if nested {
				return elems, nil
			}

			return nil, p.fail(pos, "unmatched ')'")

		case p.keyword(KeywordForeach):
			each, err := p.parseForeach(pos)
			if err != nil {
				return nil, err
			}

			elems = append(elems, each)

			continue

		case p.keyword(KeywordRequires):
			req, err := p.parseRequires(pos)
			if err != nil {
				return nil, err
			}

			elems = append(elems, req)

			continue
		}

		ok, err := p.skipIgnored()
		if err != nil {
			return nil, err
		}

		if ok {
			continue
		}

		switch ch := p.peek(); {
		case ch == '"':
			s, err := p.parseString()
			if err != nil {
				return nil, err
			}

			elems = append(elems, &StringLiteral{Value: s, Position: pos})

		case isIdentifierStart(ch):
			path, err := p.parsePath()
			if err != nil {
				return nil, err
			}

			elems = append(elems, &Variable{Path: path, Position: pos})

		default:
			return nil, p.fail(pos, "unexpected character "+strconv.QuoteRune(ch),
				"(", KeywordForeach, KeywordRequires, `"`, "identifier")
		}
	}
}

// parseSubScope parses: '(' Scope ')'.
func (p *parser) parseSubScope() (*Scope, error) {
	pos := p.position()

	if !p.expect('(') {
		return nil, p.fail(pos, "invalid scope", "(")
	}

	body, err := p.parseBody(pos)
	if err != nil {
		return nil, err
	}

	return &Scope{Elements: body, Position: pos}, nil
}

// parseBody parses the inside of a parenthesized scope whose '(' at open has
// already been consumed, including the closing ')'.
func (p *parser) parseBody(open Position) ([]Element, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		return nil, ErrMaxDepthExceeded.
			WithPosition(open).
			With(slog.Int("max_depth", p.opts.maxDepth)).
			Wrap(ErrParse)
	}

	body, err := p.parseScope(true)
	if err != nil {
		return nil, err
	}

	if !p.expect(')') {
		return nil, p.fail(open, "unterminated scope", ")")
	}

	return body, nil
}

// parseForeach parses the remainder of: 'foreach' Identifier ':' Path '(' Scope ')'.
// The keyword at pos has already been consumed.
func (p *parser) parseForeach(pos Position) (*Foreach, error) {
	if err := p.skip(); err != nil {
		return nil, err
	}

	value, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if err := p.skip(); err != nil {
		return nil, err
	}

	if !p.expect(':') {
		return nil, p.fail(p.position(), "invalid foreach", ":")
	}

	if err := p.skip(); err != nil {
		return nil, err
	}

	variable, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	if err := p.skip(); err != nil {
		return nil, err
	}

	open := p.position()

	if !p.expect('(') {
		return nil, p.fail(open, "invalid foreach", "(")
	}

	body, err := p.parseBody(open)
	if err != nil {
		return nil, err
	}

	return &Foreach{
		Value:    value,
		Variable: variable,
		Body:     body,
		Position: pos,
	}, nil
}

// parseRequires parses the remainder of: 'requires' Path.
// The keyword at pos has already been consumed.
func (p *parser) parseRequires(pos Position) (*Requires, error) {
	if err := p.skip(); err != nil {
		return nil, err
	}

	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	return &Requires{Path: path, Position: pos}, nil
}

// skip discards ignored text between tokens.
func (p *parser) skip() error {
	_, err := p.skipIgnored()

	return err
}
