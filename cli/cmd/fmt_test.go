package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmpl/tmpl"
)

const fmtSource = `"a" /* note */ ( requires b b ) foreach x : xs ( x "," )`

func TestFmt_Native(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.tmpl", fmtSource)

	tests := []struct {
		name   string
		indent int
	}{
		{"single_line", 0},
		{"indented", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := testContext(t, kong.Vars{})

			if err := (&Native{Indent: tt.indent, Source: src}).Run(ctx); err != nil {
				t.Fatal(err)
			}

			out := stdout.String()
			if strings.Contains(out, "note") {
				t.Errorf("comment survived formatting: %q", out)
			}

			// Formatted output parses back to the same tree.
			want, err := tmpl.Parse(t.Context(), fmtSource)
			if err != nil {
				t.Fatal(err)
			}

			got, err := tmpl.Parse(t.Context(), out)
			if err != nil {
				t.Fatalf("formatted output does not parse: %v\n%s", err, out)
			}

			if !equalTrees(got, want) {
				t.Errorf("formatted tree differs:\n%s", out)
			}
		})
	}
}

// equalTrees compares trees by their JSON structure, which omits positions.
func equalTrees(a, b tmpl.Element) bool {
	ja, errA := json.Marshal(tmpl.ToMap(a))
	jb, errB := json.Marshal(tmpl.ToMap(b))

	return errA == nil && errB == nil && string(ja) == string(jb)
}

func TestFmt_Structured(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.tmpl", fmtSource)

	t.Run("json", func(t *testing.T) {
		ctx, stdout, _ := testContext(t, kong.Vars{})

		if err := (&JSON{Indent: 2, Source: src}).Run(ctx); err != nil {
			t.Fatal(err)
		}

		var doc map[string]any
		if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, stdout)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		ctx, stdout, _ := testContext(t, kong.Vars{})

		if err := (&YAML{Indent: 2, Source: src}).Run(ctx); err != nil {
			t.Fatal(err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(stdout.Bytes(), &doc); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, stdout)
		}
	})

	t.Run("ast", func(t *testing.T) {
		ctx, stdout, _ := testContext(t, kong.Vars{})

		if err := (&AST{Source: src}).Run(ctx); err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(stdout.String(), "xs") {
			t.Errorf("tree output missing foreach source:\n%s", stdout)
		}
	})
}

func TestFmt_InvalidSource(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "bad.tmpl", `( "a"`)

	ctx, stdout, _ := testContext(t, kong.Vars{})

	err := (&Native{Indent: 2, Source: src}).Run(ctx)
	if !errors.Is(err, tmpl.ErrParse) {
		t.Errorf("Native.Run() error = %v, want ErrParse", err)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", stdout.String())
	}
}
