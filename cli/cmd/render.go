package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/tmpl/log"
)

// Render generates a template against the argument context.
type Render struct {
	Inputs `embed:""`

	Output string `help:"Write output to file instead of stdout" placeholder:"FILE" short:"o" type:"path"`

	Template string `arg:"" default:"-" help:"Template file, searched in the include path, or '-' for stdin." name:"template"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Template == stdinSource && r.reads(stdinSource) {
		return ErrStdinReuse.With(slog.String("template", r.Template))
	}

	t, err := r.template(ctx)
	if err != nil {
		return err
	}

	opts, err := r.options()
	if err != nil {
		return err
	}

	root, err := parseTemplate(ctx, r.Template, opts...)
	if err != nil {
		return err
	}

	t.SetTemplate(root)

	out, err := t.Generate(ctx)
	if err != nil {
		return err
	}

	var w io.Writer = stdout(ctx)

	if r.Output != "" {
		file, err := os.Create(r.Output)
		if err != nil {
			return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
		}
		defer file.Close()

		w = file
	}

	if _, err := io.WriteString(w, out); err != nil {
		return ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
	}

	log.DebugContext(ctx, "template rendered",
		slog.String("template", r.Template),
		slog.Int("bytes", len(out)))

	return nil
}
