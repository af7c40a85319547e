package tmpl

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

var formatSources = []string{
	``,
	`"Hello!"`,
	`"a\n\t\\\"b" x.y.z`,
	`( requires a "a=" a ) ( )`,
	`foreach v : items ( v.name " " ( requires v.tag "#" v.tag ) )`,
	"// comment\n\"x\" /* block */ ( ( ( deep ) ) )",
	`foreach r : rows ( foreach c : r.cells ( c ) ";" )`,
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, src := range formatSources {
		for _, indent := range []int{0, 2} {
			root, err := Parse(t.Context(), src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", src, err)
			}

			var buf bytes.Buffer
			if err := Format(t.Context(), &buf, root, indent); err != nil {
				t.Fatalf("Format: %v", err)
			}

			again, err := Parse(t.Context(), buf.String())
			if err != nil {
				t.Fatalf("formatted output does not parse: %v\n%s", err, buf.String())
			}

			if !reflect.DeepEqual(ToMap(root), ToMap(again)) {
				t.Errorf("round trip of %q (indent %d) changed the tree:\n%s",
					src, indent, buf.String())
			}
		}
	}
}

func TestFormat_Layout(t *testing.T) {
	root, err := Parse(t.Context(), `"a" foreach v : xs ( v ( requires v.k ) )`)
	if err != nil {
		t.Fatal(err)
	}

	var flat bytes.Buffer
	if err := Format(t.Context(), &flat, root, 0); err != nil {
		t.Fatal(err)
	}

	if want := `"a" foreach v : xs (v (requires v.k))` + "\n"; flat.String() != want {
		t.Errorf("flat = %q, want %q", flat.String(), want)
	}

	var nested bytes.Buffer
	if err := Format(t.Context(), &nested, root, 2); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		`"a"`,
		`foreach v : xs (`,
		`  v`,
		`  (`,
		`    requires v.k`,
		`  )`,
		`)`,
	}, "\n") + "\n"

	if nested.String() != want {
		t.Errorf("nested =\n%s\nwant\n%s", nested.String(), want)
	}
}

func TestFormatJSON(t *testing.T) {
	root, err := Parse(t.Context(), `"a" ( requires b c )`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatJSON(t.Context(), &buf, root, 0); err != nil {
		t.Fatal(err)
	}

	var got any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	want := map[string]any{"scope": []any{
		map[string]any{"string": "a"},
		map[string]any{"scope": []any{
			map[string]any{"requires": "b"},
			map[string]any{"variable": "c"},
		}},
	}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("JSON = %v, want %v", got, want)
	}
}

func TestFormatYAML(t *testing.T) {
	root, err := Parse(t.Context(), `foreach v : xs ( v )`)
	if err != nil {
		t.Fatal(err)
	}

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := FormatYAML(t.Context(), &buf, root, indent); err != nil {
			t.Fatal(err)
		}

		var got map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid YAML %q: %v", buf.String(), err)
		}

		scope, ok := got["scope"].([]any)
		if !ok || len(scope) != 1 {
			t.Fatalf("YAML scope = %#v", got["scope"])
		}

		each, ok := scope[0].(map[string]any)["foreach"].(map[string]any)
		if !ok || each["value"] != "v" || each["variable"] != "xs" {
			t.Errorf("YAML foreach = %#v", scope[0])
		}
	}
}

func TestPrint(t *testing.T) {
	root, err := Parse(t.Context(), `"a" foreach v : xs ( v.name )`)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Print(&buf, root); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{`"a"`, "v : xs", "v.name", "1:1", "1:5"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output lacks %q:\n%s", want, out)
		}
	}
}
