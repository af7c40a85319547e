package cmd

import (
	"context"

	"github.com/ardnew/tmpl/cli/cmd/repl"
	"github.com/ardnew/tmpl/log"
)

// Repl starts an interactive session that renders template snippets against
// the argument context.
type Repl struct {
	Inputs `embed:""`

	Template string `arg:"" help:"Template file loaded for the render command." name:"template" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// Standard input drives the session.
	if r.Template == stdinSource || r.reads(stdinSource) {
		return ErrStdinInteractive
	}

	t, err := r.template(ctx)
	if err != nil {
		return err
	}

	opts, err := r.options()
	if err != nil {
		return err
	}

	if r.Template != "" {
		root, err := parseTemplate(ctx, r.Template, opts...)
		if err != nil {
			return err
		}

		t.SetTemplate(root)
	}

	cacheDir := ""
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, t, opts, cacheDir, log.Default())
}
