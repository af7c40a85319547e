package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmpl/log"
	"github.com/ardnew/tmpl/tmpl"
)

const defaultEditor = "vi"

// editContextCommand implements [tea.ExecCommand] for the context
// edit-decode-retry loop. It writes the current context as YAML to a temp
// file, opens the user's editor, and decodes the result. On a decode error
// the user is prompted to re-edit; declining exits the program.
type editContextCommand struct {
	value   tmpl.Value
	ctxFunc func() context.Context
	edited  tmpl.Value // nil if the user cleared the file
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editContextCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editContextCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editContextCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-decode-retry loop. If the user declines to re-edit
// after an error, it returns [ErrEditDeclined].
func (c *editContextCommand) Run() error {
	ctx := c.ctxFunc()

	content, err := yaml.MarshalWithOptions(
		tmpl.ToNative(c.value),
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	f, err := os.CreateTemp("", "tmpl-repl-*.yaml")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		// A cleared file cancels the edit.
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		v, decodeErr := tmpl.DecodeContext(bytes.NewReader(data))
		c.logger.TraceContext(ctx, "editor decode attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", decodeErr == nil),
		)

		if decodeErr == nil {
			c.edited = v

			return nil
		}

		fmt.Fprintf(c.stderr, "\nDecode error: %s\n", decodeErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		// Keep the failed content for the next round.
		content = data
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = defaultEditor
	}

	// EDITOR may carry arguments, e.g. "code --wait".
	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
