package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's writer, so colors are dropped when the writer
// is not a terminal.
type palette struct {
	key   lipgloss.Style
	str   lipgloss.Style
	num   lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
	null  lipgloss.Style
	time  lipgloss.Style
	dur   lipgloss.Style
	trace lipgloss.Style
	debug lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		null:  fg("8"),
		time:  fg("4"),
		dur:   fg("5"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

// level renders a level name in the color of its severity.
func (p palette) level(level slog.Level) string {
	name := strings.ToUpper(Level(level).String())

	switch {
	case level >= slog.LevelError:
		return p.err.Render(name)
	case level >= slog.LevelWarn:
		return p.warn.Render(name)
	case level >= slog.LevelInfo:
		return p.info.Render(name)
	case level >= slog.LevelDebug:
		return p.debug.Render(name)
	default:
		return p.trace.Render(name)
	}
}

// value renders an attribute value colored by kind.
func (p palette) value(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.time.Render(v.Time().String())

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return p.null.Render("null")
		case slog.Level:
			return p.level(a)
		case error:
			return p.no.Render(a.Error())
		}
	}

	return p.str.Render(v.String())
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	colors palette
	prefix string // groups joined with '.', with a trailing '.'
	attrs  []byte // preformatted attributes from WithAttrs
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		colors: makePalette(w),
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	// Write time if configured
	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			buf.WriteString(h.colors.time.Render(a.Value.Resolve().String()))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(h.colors.level(r.Level))

	// Write source if configured
	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, "", slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	if len(h.attrs) > 0 {
		buf.Write(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// replace applies the configured ReplaceAttr to a top-level attribute.
func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	// Flatten groups into dotted keys
	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, group, ga)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.colors.key.Render(prefix + a.Key))
	buf.WriteByte('=')
	buf.WriteString(h.colors.value(a.Value))
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	colors palette
	attrs  []slog.Attr
	groups []string
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		colors: makePalette(w),
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	// Add standard fields
	first := true
	if !r.Time.IsZero() {
		a := slog.Time(slog.TimeKey, r.Time)
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			h.writeField(buf, 1, a.Key, a.Value, &first)
		}
	}

	h.writeField(buf, 1, slog.LevelKey, slog.AnyValue(r.Level), &first)

	// Write source if configured
	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf, 1, slog.SourceKey,
				slog.StringValue(fmt.Sprintf("%s:%d", src.File, src.Line)), &first)
		}
	}

	h.writeField(buf, 1, slog.MessageKey, slog.StringValue(r.Message), &first)

	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	// Nest record attributes under the open groups
	for i := len(h.groups) - 1; i >= 0 && len(attrs) > 0; i-- {
		attrs = []slog.Attr{{Key: h.groups[i], Value: slog.GroupValue(attrs...)}}
	}

	for _, a := range append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...) {
		h.writeField(buf, 1, a.Key, a.Value, &first)
	}

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h

	if len(h.groups) > 0 {
		// Attributes added inside a group belong to that group.
		var nested []slog.Attr

		nested = append(nested, attrs...)
		for i := len(h.groups) - 1; i >= 0; i-- {
			nested = []slog.Attr{{Key: h.groups[i], Value: slog.GroupValue(nested...)}}
		}

		attrs = nested
	}

	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	depth int,
	key string,
	v slog.Value,
	first *bool,
) {
	v = v.Resolve()

	if key == "" && v.Kind() != slog.KindGroup {
		return
	}

	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	indent := bytes.Repeat([]byte("  "), depth)

	buf.Write(indent)
	// Key in gray
	buf.WriteString(h.colors.key.Render(key))
	buf.WriteString(": ")

	if v.Kind() != slog.KindGroup {
		buf.WriteString(h.colors.value(v))

		return
	}

	buf.WriteString("{\n")

	inner := true
	for _, ga := range v.Group() {
		h.writeField(buf, depth+1, ga.Key, ga.Value, &inner)
	}

	buf.WriteByte('\n')
	buf.Write(indent)
	buf.WriteByte('}')
}
