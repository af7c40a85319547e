package tmpl

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors derived from a sentinel with [Error.With], [Error.Wrap] or
// [Error.WithPosition] still match it with [errors.Is].
var (
	ErrParse            = NewError("parse error")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrDecode           = NewError("failed to decode context")
	ErrInvalidPath      = NewError("invalid path")
	ErrInvalidElement   = NewError("invalid template element")
	ErrRequires         = NewError("required variable undefined")
	ErrExpr             = NewError("failed to evaluate expression")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	pos   *Position   // Source position, if any
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <line>:<col>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos != nil {
			msg += " at " + e.pos.String()
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error with the same message, so that
// values derived from a sentinel match the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// WithPosition returns a copy of the error located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		pos:   &pos,
		attrs: e.attrs,
	}
}

// ParseError describes malformed template source. It matches [ErrParse]
// with [errors.Is].
type ParseError struct {
	Pos      Position
	Reason   string
	Expected []string
	Source   string // The original source input, used for the snippet
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": ")
	buf.WriteString(e.Reason)

	if len(e.Expected) > 0 {
		buf.WriteString(" (expected ")

		for i, exp := range e.Expected {
			if i > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(strconv.Quote(exp))
		}

		buf.WriteString(")")
	}

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteString("\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Unwrap returns [ErrParse].
func (e *ParseError) Unwrap() error { return ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrParse.msg),
		slog.String("reason", e.Reason),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", e.Expected))
	}

	return slog.GroupValue(attrs...)
}

// Snippet returns the offending source line with a caret under the error
// column, or the empty string if the source is unavailable.
func (e *ParseError) Snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Source == "" || e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	// Print the line with line number
	line := strings.TrimRight(lines[e.Pos.Line-1], "\r")
	num := strconv.Itoa(e.Pos.Line)

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(num)+5)
	if e.Pos.Column > 0 {
		padding += strings.Repeat(" ", e.Pos.Column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}

// GenerateError reports a [Requires] gate whose path was undefined. It
// matches [ErrRequires] with [errors.Is].
type GenerateError struct {
	Path Path
	Pos  Position
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return "required variable " + strconv.Quote(e.Path.String()) +
		" undefined at " + e.Pos.String() + ": scope rejected"
}

// Unwrap returns [ErrRequires].
func (e *GenerateError) Unwrap() error { return ErrRequires }

// LogValue implements slog.LogValuer.
func (e *GenerateError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrRequires.msg),
		slog.String("path", e.Path.String()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	)
}
