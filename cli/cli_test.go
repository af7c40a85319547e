package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestNewParser_Commands(t *testing.T) {
	dir := t.TempDir()

	ctxFile := filepath.Join(dir, "ctx.yaml")
	if err := os.WriteFile(ctxFile, []byte("a: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		command string
		check   func(t *testing.T, cli *CLI)
	}{
		{
			name:    "default_render",
			args:    []string{"page.tmpl", "-c", ctxFile},
			command: "render",
			check: func(t *testing.T, cli *CLI) {
				if cli.Render.Template != "page.tmpl" || !cli.Render.Meta {
					t.Errorf("render = %+v", cli.Render)
				}

				if cli.Render.MaxDepth != 64 || cli.Render.Contract != "v1" {
					t.Errorf("defaults = %d, %q", cli.Render.MaxDepth, cli.Render.Contract)
				}
			},
		},
		{
			name: "render_flags",
			args: []string{
				"render", "--no-meta", "--max-depth=3", "-o", "out.txt",
				"--set", "a.b=1 + 2", "--set-string", "c=x,y", "t",
			},
			command: "render",
			check: func(t *testing.T, cli *CLI) {
				r := cli.Render
				if r.Meta || r.MaxDepth != 3 || filepath.Base(r.Output) != "out.txt" {
					t.Errorf("render = %+v", r)
				}

				if !slices.Equal(r.Set, []string{"a.b=1 + 2"}) ||
					!slices.Equal(r.SetString, []string{"c=x,y"}) {
					t.Errorf("assignments = %q, %q", r.Set, r.SetString)
				}
			},
		},
		{
			name:    "get",
			args:    []string{"get", "-c", ctxFile, "a"},
			command: "get",
			check: func(t *testing.T, cli *CLI) {
				if cli.Get.Path != "a" || len(cli.Get.Context) != 1 {
					t.Errorf("get = %+v", cli.Get)
				}
			},
		},
		{
			name:    "check",
			args:    []string{"check", "a.tmpl", "b.tmpl"},
			command: "check",
			check: func(t *testing.T, cli *CLI) {
				if !slices.Equal(cli.Check.Templates, []string{"a.tmpl", "b.tmpl"}) {
					t.Errorf("check = %+v", cli.Check)
				}
			},
		},
		{
			name:    "fmt_json_with_include",
			args:    []string{"-I", dir, "fmt", "json", "-i", "4", "x.tmpl"},
			command: "fmt json",
			check: func(t *testing.T, cli *CLI) {
				if cli.Fmt.JSON.Indent != 4 || cli.Fmt.JSON.Source != "x.tmpl" {
					t.Errorf("fmt json = %+v", cli.Fmt.JSON)
				}

				if !slices.Equal(cli.Include, []string{dir}) {
					t.Errorf("include = %v", cli.Include)
				}
			},
		},
		{
			name:    "log_flags",
			args:    []string{"--log-level=debug", "--log-format", "text", "init", "-f"},
			command: "init",
			check: func(t *testing.T, cli *CLI) {
				if cli.Log.Level != "debug" || cli.Log.Format != "text" || !cli.Init.Force {
					t.Errorf("log = %+v, init = %+v", cli.Log, cli.Init)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI

			parser, err := newParser(&cli,
				func() context.Context { return t.Context() },
				func(int) {},
				kong.Writers(io.Discard, io.Discard),
			)
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, err)
			}

			if !strings.HasPrefix(ktx.Command(), tt.command) {
				t.Errorf("command = %q, want %q", ktx.Command(), tt.command)
			}

			tt.check(t, &cli)
		})
	}
}
