package tmpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/goccy/go-yaml"
)

// Format writes el in template syntax. With indent zero the output is one
// line; otherwise each element of a scope is written on its own line,
// indented by indent spaces per nesting level. Comments are not preserved.
// The output parses back to a tree equal to el.
func Format(_ context.Context, w io.Writer, el Element, indent int) error {
	var buf strings.Builder

	root, ok := el.(*Scope)
	if ok {
		formatList(&buf, root.Elements, indent, 0)
	} else if el != nil {
		formatElement(&buf, el, indent, 0)
	}

	// Final newline
	buf.WriteByte('\n')

	_, err := io.WriteString(w, buf.String())

	return err
}

// FormatJSON writes the structure of el as JSON.
func FormatJSON(_ context.Context, w io.Writer, el Element, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToMap(el), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(el))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the structure of el as YAML.
func FormatYAML(ctx context.Context, w io.Writer, el Element, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(el), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

var (
	printRootStyle = lipgloss.NewStyle().Bold(true)
	printKindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	printEnumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Print writes el as an indented tree, one element per line.
func Print(w io.Writer, el Element) error {
	t := printTree(el).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(printEnumStyle).
		RootStyle(printRootStyle)

	_, err := fmt.Fprintln(w, t.String())

	return err
}

func printTree(el Element) *tree.Tree {
	t := tree.Root(printLabel(el))

	var children []Element

	switch e := el.(type) {
	case *Scope:
		children = e.Elements
	case *Foreach:
		children = e.Body
	}

	for _, c := range children {
		switch c.(type) {
		case *Scope, *Foreach:
			t.Child(printTree(c))
		default:
			t.Child(printLabel(c))
		}
	}

	return t
}

func printLabel(el Element) string {
	if el == nil {
		return printKindStyle.Render("nil")
	}

	kind := printKindStyle.Render(el.Kind().String())
	pos := el.Pos().String()

	switch e := el.(type) {
	case *StringLiteral:
		return kind + " " + quote(e.Value) + " @" + pos
	case *Variable:
		return kind + " " + e.Path.String() + " @" + pos
	case *Requires:
		return kind + " " + e.Path.String() + " @" + pos
	case *Foreach:
		return kind + " " + e.Value + " : " + e.Variable.String() + " @" + pos
	default:
		return kind + " @" + pos
	}
}

func formatList(buf *strings.Builder, elems []Element, indent, depth int) {
	first := true

	for _, el := range elems {
		if _, ok := el.(*Ignored); ok {
			continue
		}

		if !first {
			if indent > 0 {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}

		first = false

		if indent > 0 {
			buf.WriteString(strings.Repeat(" ", depth*indent))
		}

		formatElement(buf, el, indent, depth)
	}
}

func formatElement(buf *strings.Builder, el Element, indent, depth int) {
	switch e := el.(type) {
	case *StringLiteral:
		buf.WriteString(quote(e.Value))

	case *Variable:
		buf.WriteString(e.Path.String())

	case *Requires:
		buf.WriteString(KeywordRequires + " " + e.Path.String())

	case *Scope:
		formatBody(buf, e.Elements, indent, depth)

	case *Foreach:
		buf.WriteString(KeywordForeach + " " + e.Value + " : " + e.Variable.String() + " ")
		formatBody(buf, e.Body, indent, depth)
	}
}

func formatBody(buf *strings.Builder, elems []Element, indent, depth int) {
	buf.WriteByte('(')

	if indent > 0 && len(elems) > 0 {
		buf.WriteByte('\n')
		formatList(buf, elems, indent, depth+1)
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", depth*indent))
	} else {
		formatList(buf, elems, indent, depth)
	}

	buf.WriteByte(')')
}

// quote returns s as a string literal using only the escapes the grammar
// accepts.
func quote(s string) string {
	var buf strings.Builder

	buf.Grow(len(s) + 2)
	buf.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteRune(r)
		}
	}

	buf.WriteByte('"')

	return buf.String()
}
