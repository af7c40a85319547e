package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/tmpl"
)

// Inputs are the flags shared by commands that render against an argument
// context.
type Inputs struct {
	Context   []string `help:"YAML or JSON argument context file(s) or '-' for stdin" placeholder:"FILE"       sep:"none" short:"c" type:"existingfile"`
	Set       []string `help:"Set an argument to the result of an expression"         placeholder:"PATH=EXPR"  sep:"none"`
	SetString []string `help:"Set an argument to a literal string"                    placeholder:"PATH=VALUE" sep:"none"`

	Meta     bool   `default:"true"        help:"Inject the default true, false and meta arguments" negatable:""`
	MaxDepth int    `default:"${maxDepth}" help:"Maximum nesting depth of scopes (0 disables the limit)"`
	Contract string `default:"v1"          help:"Contract version published under meta"`
}

// options returns the template options selected by the flags.
func (in *Inputs) options() ([]tmpl.Option, error) {
	v, err := version.NewVersion(in.Contract)
	if err != nil {
		return nil, ErrContract.
			With(slog.String("contract", in.Contract)).
			Wrap(err)
	}

	return []tmpl.Option{
		tmpl.WithMaxDepth(in.MaxDepth),
		tmpl.WithVersion(v),
		tmpl.WithLogger(log.Default()),
	}, nil
}

// reads reports whether source is one of the context files.
func (in *Inputs) reads(source string) bool {
	for _, c := range in.Context {
		if c == source {
			return true
		}
	}

	return false
}

// template builds a template with the context described by the flags.
//
// Context files are merged first. The default arguments are injected next
// unless disabled, so that --set and --set-string may still override them.
// Assignments are applied in command-line order within each flag.
func (in *Inputs) template(ctx context.Context) (*tmpl.Template, error) {
	opts, err := in.options()
	if err != nil {
		return nil, err
	}

	t := tmpl.New(opts...)

	v, err := loadContexts(ctx, in.Context)
	if err != nil {
		return nil, err
	}

	t.SetContext(v)

	if in.Meta {
		t.OverrideArguments()
	}

	for _, s := range in.Set {
		path, expression, err := tmpl.ParseAssignment(s)
		if err != nil {
			return nil, ErrAssign.With(slog.String("set", s)).Wrap(err)
		}

		ok, err := t.Assign(ctx, path, expression)
		if err != nil {
			return nil, ErrAssign.With(slog.String("set", s)).Wrap(err)
		}

		log.TraceContext(ctx, "argument assigned",
			slog.String("path", path.String()),
			slog.Bool("changed", ok))
	}

	for _, s := range in.SetString {
		lhs, rhs, found := strings.Cut(s, "=")
		if !found {
			return nil, ErrAssign.
				With(slog.String("set-string", s)).
				Wrap(tmpl.ErrInvalidPath)
		}

		path, err := tmpl.ParsePath(strings.TrimSpace(lhs))
		if err != nil {
			return nil, ErrAssign.With(slog.String("set-string", s)).Wrap(err)
		}

		t.SetArgument(path, &rhs)
	}

	return t, nil
}
