package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	good := writeFile(t, dir, "good.tmpl", `"a" ( requires b b ) foreach x : xs ( x )`)
	bad := writeFile(t, dir, "bad.tmpl", "\"a\"\n  foreach x xs ( x )")

	tests := []struct {
		name       string
		templates  []string
		wantErr    bool
		wantStderr []string
	}{
		{
			name:      "all_valid",
			templates: []string{good},
		},
		{
			name:       "one_invalid",
			templates:  []string{bad, good},
			wantErr:    true,
			wantStderr: []string{"bad.tmpl: ", "line 2", "foreach x xs ( x )", "^"},
		},
		{
			name:       "missing",
			templates:  []string{"missing.tmpl"},
			wantErr:    true,
			wantStderr: []string{"missing.tmpl: template not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, stderr := testContext(t, kong.Vars{})

			c := &Check{MaxDepth: 64, Templates: tt.templates}

			err := c.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr && !errors.Is(err, ErrCheckFailed) {
				t.Errorf("Check.Run() error = %v, want ErrCheckFailed", err)
			}

			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
				}
			}

			if !tt.wantErr && stderr.Len() != 0 {
				t.Errorf("stderr = %q, want nothing", stderr.String())
			}
		})
	}
}

func TestCheck_MaxDepth(t *testing.T) {
	dir := t.TempDir()
	deep := writeFile(t, dir, "deep.tmpl", `( ( ( "x" ) ) )`)

	ctx, _, stderr := testContext(t, kong.Vars{})

	if err := (&Check{MaxDepth: 2, Templates: []string{deep}}).Run(ctx); err == nil {
		t.Fatal("Check.Run() succeeded beyond the depth limit")
	}

	if !strings.Contains(stderr.String(), "depth") {
		t.Errorf("stderr = %q, want a depth error", stderr.String())
	}

	if err := (&Check{MaxDepth: 0, Templates: []string{deep}}).Run(ctx); err != nil {
		t.Errorf("Check.Run() with no limit error = %v", err)
	}
}
