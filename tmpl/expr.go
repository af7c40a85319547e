package tmpl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
)

// ParseAssignment splits an assignment of the form "a.b=expression" into
// its path and expression. Whitespace around either side is ignored.
func ParseAssignment(s string) (Path, string, error) {
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return nil, "", ErrInvalidPath.
			With(slog.String("assignment", s)).
			Wrap(errors.New("expected path=expression"))
	}

	path, err := ParsePath(strings.TrimSpace(lhs))
	if err != nil {
		return nil, "", err
	}

	return path, strings.TrimSpace(rhs), nil
}

// Eval evaluates an expr-lang expression. The top-level keys of an [Object]
// context are visible as variables; names that are not defined evaluate to
// nil. The result is converted with [FromNative].
func (t *Template) Eval(ctx context.Context, expression string) (Value, error) {
	env, ok := ToNative(t.ctx).(map[string]any)
	if !ok {
		env = map[string]any{}
	}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, ErrExpr.
			With(slog.String("expr", expression)).
			Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrExpr.
			With(slog.String("expr", expression)).
			Wrap(err)
	}

	v, err := FromNative(out)
	if err != nil {
		return nil, ErrExpr.
			With(slog.String("expr", expression)).
			Wrap(err)
	}

	t.opts.logger.TraceContext(ctx, "expression evaluated",
		slog.String("expr", expression),
		slog.String("kind", v.ValueKind().String()))

	return v, nil
}

// Assign evaluates expression with [Template.Eval] and stores the result at
// path with [Template.SetValue]. A null result deletes the leaf.
func (t *Template) Assign(ctx context.Context, path Path, expression string) (bool, error) {
	v, err := t.Eval(ctx, expression)
	if err != nil {
		return false, err
	}

	if _, isNull := v.(Null); isNull {
		v = nil
	}

	return t.SetValue(path, v), nil
}
