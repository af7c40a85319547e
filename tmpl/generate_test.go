package tmpl

import (
	"errors"
	"strings"
	"testing"
)

func mustContext(t *testing.T, yaml string) Value {
	t.Helper()

	v, err := DecodeContext(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("decode context: %v", err)
	}

	return v
}

func TestGenerate(t *testing.T) {
	items := `items: [{name: A}, {name: B}, {name: C}]`

	tests := []struct {
		name    string
		source  string
		context string
		want    string
	}{
		{
			name:   "empty source",
			source: ``,
			want:   "",
		},
		{
			name:   "single literal",
			source: `"Hello!"`,
			want:   "Hello!",
		},
		{
			name:    "literals ignore context",
			source:  `"a" "b" /* c */ "d"`,
			context: `a: 1`,
			want:    "abd",
		},
		{
			name:    "nested path",
			source:  `a.b.c`,
			context: `a: {b: {c: X}}`,
			want:    "X",
		},
		{
			name:    "undefined path renders empty",
			source:  `"[" a.b.c "]"`,
			context: `a: {b: {}}`,
			want:    "[]",
		},
		{
			name:    "numbers keep their form",
			source:  `i " " f " " g`,
			context: `{i: 42, f: 1.5, g: 2.0}`,
			want:    "42 1.5 2.0",
		},
		{
			name:    "bools",
			source:  `"[" enabled "][" disabled "][" enabled.deeper "]"`,
			context: `{enabled: true, disabled: false}`,
			want:    "[true][][true]",
		},
		{
			name:    "null renders empty",
			source:  `"[" nothing "]"`,
			context: `nothing: null`,
			want:    "[]",
		},
		{
			name:    "scalar ends walk",
			source:  `s.x.y`,
			context: `s: text`,
			want:    "text",
		},
		{
			name:    "array index",
			source:  `items.1.name`,
			context: items,
			want:    "B",
		},
		{
			name:    "requires passes",
			source:  `( requires a "a=" a )`,
			context: `a: 1`,
			want:    "a=1",
		},
		{
			name:    "requires accepts empty string",
			source:  `( requires a "ok" )`,
			context: `a: ""`,
			want:    "ok",
		},
		{
			name:    "requires drops only its scope",
			source:  `"x" ( "dropped" requires missing "also dropped" ) "y"`,
			context: `a: 1`,
			want:    "xy",
		},
		{
			name:    "failed inner scope keeps outer",
			source:  `( "a" ( requires missing "b" ) "c" )`,
			context: `{}`,
			want:    "ac",
		},
		{
			name:    "sibling scopes are independent",
			source:  `( requires a "A" ) ( requires b "B" ) ( requires c "C" )`,
			context: `{a: 1, c: 1}`,
			want:    "AC",
		},
		{
			name:    "requires false is undefined",
			source:  `( requires flag "on" )`,
			context: `flag: false`,
			want:    "",
		},
		{
			name:    "foreach over objects",
			source:  `foreach v : items ( v.name " " )`,
			context: items,
			want:    "A B C ",
		},
		{
			name:    "foreach over missing path",
			source:  `"[" foreach v : none ( v ) "]"`,
			context: items,
			want:    "[]",
		},
		{
			name:    "foreach over scalar",
			source:  `"[" foreach v : s ( "x" ) "]"`,
			context: `s: text`,
			want:    "[]",
		},
		{
			name:    "foreach stops at false",
			source:  `foreach v : xs ( v "," )`,
			context: `xs: [a, b, false, c]`,
			want:    "a,b,",
		},
		{
			name:    "foreach over numeric object keys",
			source:  `foreach v : m ( v )`,
			context: `m: {"0": a, "1": b, "3": d}`,
			want:    "ab",
		},
		{
			name:    "foreach iteration failure is skipped",
			source:  `foreach v : xs ( requires v.ok v.name )`,
			context: `xs: [{name: a, ok: 1}, {name: b}, {name: c, ok: 1}]`,
			want:    "ac",
		},
		{
			name:    "nested foreach",
			source:  `foreach r : rows ( foreach c : r.cells ( c ) ";" )`,
			context: `rows: [{cells: [a, b]}, {cells: [c]}]`,
			want:    "ab;c;",
		},
		{
			name:    "shadowing resolves innermost",
			source:  `foreach v : outer ( foreach v : v.inner ( v ) "|" )`,
			context: `outer: [{inner: [x, y]}, {inner: [z]}]`,
			want:    "xy|z|",
		},
		{
			name:    "alias visible in nested scope",
			source:  `foreach v : xs ( ( requires v.tag "#" v.tag ) v.name )`,
			context: `xs: [{name: a, tag: t}, {name: b}]`,
			want:    "#tab",
		},
		{
			name:    "self-referencing source is undefined",
			source:  `foreach items : items ( "[" items.name "]" )`,
			context: items,
			want:    "[][][]",
		},
		{
			name:    "alias named after its source renders empty per item",
			source:  `foreach x : x ( x "," )`,
			context: `x: [a, b]`,
			want:    ",,",
		},
		{
			name:    "distinct alias over the same source",
			source:  `foreach y : x ( y "," )`,
			context: `x: [a, b]`,
			want:    "a,b,",
		},
		{
			name:    "meta after override",
			source:  `( requires meta.v1 meta.version )`,
			context: `{}`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := From(tt.source)
			if err != nil {
				t.Fatalf("From(%q): %v", tt.source, err)
			}

			if tt.context != "" {
				tmpl.SetContext(mustContext(t, tt.context))
			}

			got, err := tmpl.Generate(t.Context())
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestGenerate_RootRequiresFails(t *testing.T) {
	tmpl, err := From(`"before " requires a.b.missing " after"`)
	if err != nil {
		t.Fatal(err)
	}

	tmpl.SetContext(mustContext(t, `a: {b: {}}`))

	out, err := tmpl.Generate(t.Context())
	if out != "" {
		t.Errorf("output on failure = %q, want empty", out)
	}

	if !errors.Is(err, ErrRequires) {
		t.Fatalf("expected ErrRequires, got %v", err)
	}

	var gerr *GenerateError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerateError, got %T", err)
	}

	if got := gerr.Path.String(); got != "a.b.missing" {
		t.Errorf("failed path = %q, want a.b.missing", got)
	}

	if !strings.Contains(err.Error(), `"a.b.missing"`) {
		t.Errorf("message %q does not name the path", err.Error())
	}
}

func TestGenerate_OverrideMeta(t *testing.T) {
	tmpl, err := From(`( requires meta.v1 "v=" meta.version ) ( requires false "never" ) true`)
	if err != nil {
		t.Fatal(err)
	}

	tmpl.SetContext(Object{"false": String("yes")})
	tmpl.OverrideArguments()

	got, err := tmpl.Generate(t.Context())
	if err != nil {
		t.Fatal(err)
	}

	if want := "v=v1true"; got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}

func TestGenerate_SetTemplate(t *testing.T) {
	tmpl := New()
	tmpl.SetContext(Object{"name": String("world")})

	tmpl.SetTemplate(&Variable{Path: Path{"name"}})

	got, err := tmpl.Generate(t.Context())
	if err != nil || got != "world" {
		t.Errorf("single element root = %q, %v", got, err)
	}

	tmpl.SetTemplate(nil)

	got, err = tmpl.Generate(t.Context())
	if err != nil || got != "" {
		t.Errorf("nil root = %q, %v", got, err)
	}

	tmpl.SetTemplate(&Scope{Elements: []Element{&Ignored{}, nil}})

	if _, err := tmpl.Generate(t.Context()); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("nil child: expected ErrInvalidElement, got %v", err)
	}
}

func TestGenerate_RuntimeDepth(t *testing.T) {
	var el Element = &StringLiteral{Value: "x"}
	for range 10 {
		el = &Scope{Elements: []Element{el}}
	}

	tmpl := New(WithMaxDepth(3))
	tmpl.SetTemplate(el)

	if _, err := tmpl.Generate(t.Context()); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected ErrMaxDepthExceeded, got %v", err)
	}

	tmpl = New(WithMaxDepth(20))
	tmpl.SetTemplate(el)

	if got, err := tmpl.Generate(t.Context()); err != nil || got != "x" {
		t.Errorf("Generate = %q, %v", got, err)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	tmpl, err := From(`foreach v : items ( v.name " " )`)
	if err != nil {
		t.Fatal(err)
	}

	tmpl.SetContext(mustContext(t, `items: [{name: A}, {name: B}, {name: C}]`))

	errs := make(chan error, 8)

	for range 8 {
		go func() {
			got, err := tmpl.Generate(t.Context())
			if err == nil && got != "A B C " {
				err = errors.New("unexpected output " + got)
			}

			errs <- err
		}()
	}

	for range 8 {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	var src strings.Builder

	src.WriteString(`foreach v : items ( ( requires v.tag "#" v.tag ) v.name " " )`)

	tmpl, err := From(src.String())
	if err != nil {
		b.Fatal(err)
	}

	items := make(Array, 100)
	for i := range items {
		items[i] = Object{"name": String("item"), "tag": Int(int64(i))}
	}

	tmpl.SetContext(Object{"items": items})

	b.ReportAllocs()

	for b.Loop() {
		if _, err := tmpl.Generate(b.Context()); err != nil {
			b.Fatal(err)
		}
	}
}
