package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/tmpl"
)

// Check parses templates and reports syntax errors without rendering.
type Check struct {
	MaxDepth int `default:"${maxDepth}" help:"Maximum nesting depth of scopes (0 disables the limit)"`

	Templates []string `arg:"" help:"Template files, searched in the include path, or '-' for stdin." name:"template"`
}

// Run executes the check command. Every template is checked even after a
// failure; each failure is printed with its source position and context.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	failed := 0

	for _, name := range c.Templates {
		_, err := parseTemplate(ctx, name,
			tmpl.WithMaxDepth(c.MaxDepth),
			tmpl.WithLogger(log.Default()),
		)
		if err == nil {
			log.InfoContext(ctx, "template ok", slog.String("template", name))

			continue
		}

		failed++

		// Parse errors carry their own source snippet.
		fmt.Fprintf(stderr(ctx), "%s: %v\n", name, err)
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("total", len(c.Templates)),
		)
	}

	return nil
}
