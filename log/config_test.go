package log

import (
	"fmt"
	"io"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	c := makeConfig(io.Discard,
		WithLevel(LevelTrace),
		WithFormat(FormatText),
		WithCaller(true),
		WithPretty(false),
		WithOutput(nil))

	if c.level != LevelTrace || c.format != FormatText {
		t.Errorf("level=%v format=%v", c.level, c.format)
	}

	if !c.caller || c.pretty {
		t.Errorf("caller=%v pretty=%v", c.caller, c.pretty)
	}

	if c.output != io.Discard {
		t.Error("nil output not replaced with io.Discard")
	}

	reset := c.clone(WithDefaults(io.Discard))
	if reset.level != DefaultLevel || reset.format != DefaultFormat || reset.caller {
		t.Errorf("defaults not restored: %+v", reset)
	}

	if c.level != LevelTrace {
		t.Error("clone modified the original")
	}
}

func TestWithTimeLayout(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:30:45Z"},
		{"rfc-3339-nano", "2024-03-09T14:30:45.123456789Z"},
		{"Kitchen", "2:30PM"},
		{"DateTime", "2024-03-09 14:30:45"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"", ""},
		{"  \t", ""},
	}

	for _, tt := range tests {
		var c config

		WithTimeLayout(tt.layout)(&c)

		if got := c.formatTime(at); got != tt.want {
			t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func TestHandlerSelection(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		pretty bool
		want   string
	}{
		{"json", FormatJSON, false, "*slog.JSONHandler"},
		{"text", FormatText, false, "*slog.TextHandler"},
		{"pretty_json", FormatJSON, true, "*log.prettyJSONHandler"},
		{"pretty_text", FormatText, true, "*log.prettyTextHandler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := makeConfig(io.Discard, WithFormat(tt.format), WithPretty(tt.pretty)).handler()

			if got := fmt.Sprintf("%T", h); got != tt.want {
				t.Errorf("handler = %s, want %s", got, tt.want)
			}
		})
	}
}
