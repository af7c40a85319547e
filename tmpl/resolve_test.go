package tmpl

import (
	"reflect"
	"testing"
)

func TestGetArgument(t *testing.T) {
	tmpl := New()
	tmpl.SetContext(Object{
		"a": Object{"b": Object{"c": String("X")}},
		"e": Object{"b": Object{}},
		"n": Int(7),
		"f": Float(0.25),
		"t": Bool(true),
		"x": Bool(false),
		"z": Null{},
		"l": Array{String("zero"), Object{"k": String("v")}},
	})

	tests := []struct {
		path   Path
		want   string
		wantOK bool
	}{
		{path: Path{"a", "b", "c"}, want: "X", wantOK: true},
		{path: Path{"e", "b", "c"}, wantOK: false},
		{path: Path{"a", "b"}, want: "", wantOK: true},
		{path: Path{"a", "missing"}, wantOK: false},
		{path: Path{"n"}, want: "7", wantOK: true},
		{path: Path{"n", "ignored"}, want: "7", wantOK: true},
		{path: Path{"f"}, want: "0.25", wantOK: true},
		{path: Path{"t", "anything"}, want: "true", wantOK: true},
		{path: Path{"x"}, wantOK: false},
		{path: Path{"z", "deeper"}, want: "", wantOK: true},
		{path: Path{"l", "0"}, want: "zero", wantOK: true},
		{path: Path{"l", "1", "k"}, want: "v", wantOK: true},
		{path: Path{"l", "2"}, wantOK: false},
		{path: Path{"l", "-1"}, wantOK: false},
		{path: Path{"l", "+1"}, wantOK: false},
		{path: Path{"l", "one"}, wantOK: false},
		{path: Path{}, wantOK: false},
		{path: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			got, ok := tmpl.GetArgument(tt.path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("GetArgument(%v) = %q, %v; want %q, %v",
					tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	root := Object{
		"a": Object{"b": String("X")},
		"l": Array{Int(1), Object{"k": Bool(true)}},
		"s": String("leaf"),
	}

	tests := []struct {
		path   Path
		want   Value
		wantOK bool
	}{
		{path: Path{"a"}, want: Object{"b": String("X")}, wantOK: true},
		{path: Path{"a", "b"}, want: String("X"), wantOK: true},
		{path: Path{"l", "1", "k"}, want: Bool(true), wantOK: true},
		{path: Path{"l", "2"}, wantOK: false},
		{path: Path{"s", "deeper"}, wantOK: false},
		{path: Path{}, want: root, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			got, ok := Lookup(root, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}

			if ok && !Equal(got, tt.want) {
				t.Errorf("Lookup(%v) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRedirects_Shadowing(t *testing.T) {
	var outer *redirects

	outer = outer.with("v", Path{"items", "0"})
	inner := outer.with("v", Path{"other"})

	if p, _ := outer.lookup("v"); !reflect.DeepEqual(p, Path{"items", "0"}) {
		t.Errorf("outer lookup = %v", p)
	}

	if p, _ := inner.lookup("v"); !reflect.DeepEqual(p, Path{"other"}) {
		t.Errorf("inner lookup = %v", p)
	}

	if _, ok := inner.lookup("w"); ok {
		t.Error("lookup of unbound name succeeded")
	}

	if got := inner.len(); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestRedirects_Expand(t *testing.T) {
	var table *redirects

	table = table.
		with("a", Path{"root", "x"}).
		with("b", Path{"a", "y"}).
		with("self", Path{"self", "z"}).
		with("p", Path{"q"}).
		with("q", Path{"p"}).
		with("empty", Path{})

	tests := []struct {
		name   string
		path   Path
		want   Path
		wantOK bool
	}{
		{name: "unbound", path: Path{"c", "d"}, want: Path{"c", "d"}, wantOK: true},
		{name: "direct", path: Path{"a", "k"}, want: Path{"root", "x", "k"}, wantOK: true},
		{name: "chained", path: Path{"b"}, want: Path{"root", "x", "y"}, wantOK: true},
		{name: "self cycle", path: Path{"self"}, wantOK: false},
		{name: "two cycle", path: Path{"p", "r"}, wantOK: false},
		{name: "empty alias", path: Path{"empty", "r"}, want: Path{"r"}, wantOK: true},
		{name: "empty path", path: Path{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.expand(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("expand(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}

			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expand(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRedirects_ExpandDoesNotAlias(t *testing.T) {
	var table *redirects

	bound := Path{"items", "0"}
	table = table.with("v", bound)

	got, _ := table.expand(Path{"v", "name"})
	got[0] = "changed"

	if bound[0] != "items" {
		t.Errorf("expand modified the bound path: %v", bound)
	}
}

// FuzzRedirects_Terminates checks that expansion through arbitrary alias
// chains always terminates.
func FuzzRedirects_Terminates(f *testing.F) {
	f.Add("a", "b", "b", "a", "a")
	f.Add("a", "a", "x", "y", "a")
	f.Add("a", "b", "b", "c", "c")

	f.Fuzz(func(t *testing.T, k1, v1, k2, v2, start string) {
		var table *redirects

		table = table.with(k1, Path{v1, "s"}).with(k2, Path{v2})

		path, ok := table.expand(Path{start})
		if ok && len(path) == 0 {
			t.Errorf("expand returned an empty defined path")
		}
	})
}
