package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/tmpl"
)

// Fmt parses a template and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical template syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as element tree."`
}

// source parses the template named name for formatting.
func source(ctx context.Context, name, format string) (*tmpl.Scope, error) {
	root, err := parseTemplate(ctx, name, tmpl.WithLogger(log.Default()))
	if err != nil {
		log.DebugContext(ctx, "format failed",
			slog.String("template", name),
			slog.String("format", format))

		return nil, err
	}

	return root, nil
}

// Native formats a template in canonical syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := source(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	return tmpl.Format(ctx, stdout(ctx), root, f.Indent)
}

// JSON formats a template's element tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := source(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	return tmpl.FormatJSON(ctx, stdout(ctx), root, j.Indent)
}

// YAML formats a template's element tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := source(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	return tmpl.FormatYAML(ctx, stdout(ctx), root, y.Indent)
}

// AST prints a template's element tree.
type AST struct {
	Source string `arg:"" default:"-" help:"Template file or '-' for stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	root, err := source(ctx, a.Source, "ast")
	if err != nil {
		return err
	}

	return tmpl.Print(stdout(ctx), root)
}
