package tmpl

import (
	"iter"
	"strconv"
	"strings"
)

// Path is an ordered list of segments addressing a location in the argument
// context, e.g. root.child.attribute.
type Path []string

// String returns the dot-joined form of the path.
func (p Path) String() string { return strings.Join(p, ".") }

// Join returns a new path with the given segments appended.
// The receiver is never modified.
func (p Path) Join(seg ...string) Path {
	out := make(Path, 0, len(p)+len(seg))
	out = append(out, p...)

	return append(out, seg...)
}

// Index returns a new path with a decimal index segment appended.
func (p Path) Index(i int) Path { return p.Join(strconv.Itoa(i)) }

// Position identifies a location in template source.
// Line and Column are 1-based; Offset is a byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Kind identifies the variant of an [Element].
type Kind int

const (
	// KindIgnored is whitespace or comment text; it only stands in for
	// "nothing parsed" and never appears in a finished tree.
	KindIgnored Kind = iota

	// KindStringLiteral writes its content verbatim.
	KindStringLiteral

	// KindVariable writes the resolved value of a path, or nothing.
	KindVariable

	// KindRequires rejects the enclosing scope if its path is undefined.
	KindRequires

	// KindScope is an all-or-nothing sequence of elements.
	KindScope

	// KindForeach binds an alias over its body for each item of a path.
	KindForeach
)

// String returns a lowercase name of the element kind.
func (k Kind) String() string {
	switch k {
	case KindIgnored:
		return "ignored"

	case KindStringLiteral:
		return "string"

	case KindVariable:
		return "variable"

	case KindRequires:
		return "requires"

	case KindScope:
		return "scope"

	case KindForeach:
		return "foreach"

	default:
		return "unknown"
	}
}

// Element is a node of the template AST. The set of implementations is
// closed: [Ignored], [StringLiteral], [Variable], [Requires], [Scope] and
// [Foreach].
//
// Elements are never mutated after parsing and may be shared between
// templates and goroutines.
type Element interface {
	Kind() Kind
	Pos() Position
	element()
}

// Ignored is the placeholder for "nothing parsed".
type Ignored struct {
	Position Position
}

// StringLiteral is verbatim text.
type StringLiteral struct {
	Value    string
	Position Position
}

// Variable substitutes the resolved value of Path, or the empty string if the
// path is undefined.
type Variable struct {
	Path     Path
	Position Position
}

// Requires is an existence gate. If Path is undefined, the immediately
// enclosing scope is rejected and writes nothing.
type Requires struct {
	Path     Path
	Position Position
}

// Scope is a sequence of elements evaluated in order. Its output is written
// only if every element succeeds.
type Scope struct {
	Elements []Element
	Position Position
}

// Foreach evaluates Body once per item of Variable, with Value bound as an
// alias of Variable.N for the N-th item.
//
// Value must differ from the first segment of Variable. An alias named after
// the head of its own source redirects back to itself, so every path through
// it is undefined: `foreach x : x ( x "," )` over x = [a, b] renders ",,".
type Foreach struct {
	Value    string
	Variable Path
	Body     []Element
	Position Position
}

func (*Ignored) Kind() Kind       { return KindIgnored }
func (*StringLiteral) Kind() Kind { return KindStringLiteral }
func (*Variable) Kind() Kind      { return KindVariable }
func (*Requires) Kind() Kind      { return KindRequires }
func (*Scope) Kind() Kind         { return KindScope }
func (*Foreach) Kind() Kind       { return KindForeach }

func (e *Ignored) Pos() Position       { return e.Position }
func (e *StringLiteral) Pos() Position { return e.Position }
func (e *Variable) Pos() Position      { return e.Position }
func (e *Requires) Pos() Position      { return e.Position }
func (e *Scope) Pos() Position         { return e.Position }
func (e *Foreach) Pos() Position       { return e.Position }

func (*Ignored) element()       {}
func (*StringLiteral) element() {}
func (*Variable) element()      {}
func (*Requires) element()      {}
func (*Scope) element()         {}
func (*Foreach) element()       {}

// Walk returns a depth-first, pre-order iterator over el and every element
// nested inside it.
func Walk(el Element) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		walk(el, yield)
	}
}

func walk(el Element, yield func(Element) bool) bool {
	if el == nil {
		return true
	}

	if !yield(el) {
		return false
	}

	var children []Element

	switch e := el.(type) {
	case *Scope:
		children = e.Elements

	case *Foreach:
		children = e.Body
	}

	for _, child := range children {
		if !walk(child, yield) {
			return false
		}
	}

	return true
}

// Paths returns an iterator over every path referenced by el, in source
// order. Foreach sources are included.
func Paths(el Element) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		for e := range Walk(el) {
			var p Path

			switch e := e.(type) {
			case *Variable:
				p = e.Path

			case *Requires:
				p = e.Path

			case *Foreach:
				p = e.Variable

			default:
				continue
			}

			if !yield(p) {
				return
			}
		}
	}
}
