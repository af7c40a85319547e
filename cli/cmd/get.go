package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/tmpl/tmpl"
)

// Get prints the value of one argument after all context sources and
// assignments are applied.
type Get struct {
	Inputs `embed:""`

	Path string `arg:"" help:"Dot-separated argument path, e.g. server.hosts.0" name:"path"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path, err := tmpl.ParsePath(g.Path)
	if err != nil {
		return err
	}

	t, err := g.template(ctx)
	if err != nil {
		return err
	}

	s, ok := t.GetArgument(path)
	if !ok {
		return ErrUndefined.With(slog.String("path", path.String()))
	}

	_, err = fmt.Fprintln(stdout(ctx), s)

	return err
}
