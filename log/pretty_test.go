package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyText_Layout(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
		want string
	}{
		{
			name: "message only",
			log:  func(l Logger) { l.Info("hello") },
			want: "INFO hello\n",
		},
		{
			name: "trace level name",
			log:  func(l Logger) { l.Trace("deep") },
			want: "TRACE deep\n",
		},
		{
			name: "attribute kinds",
			log: func(l Logger) {
				l.Warn("kinds",
					slog.String("s", "x"),
					slog.Int("i", 3),
					slog.Bool("b", false),
					slog.Any("err", errors.New("boom")))
			},
			want: "WARN kinds s=x i=3 b=false err=boom\n",
		},
		{
			name: "persistent attributes",
			log: func(l Logger) {
				l.With(slog.String("k", "v")).Info("with")
			},
			want: "INFO with k=v\n",
		},
		{
			name: "groups flatten",
			log: func(l Logger) {
				l.WithGroup("g").Info("grouped",
					slog.Group("h", slog.Int("n", 1)))
			},
			want: "INFO grouped g.h.n=1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf,
				WithFormat(FormatText),
				WithLevel(LevelTrace),
				WithTimeLayout("none")))

			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyJSON_Layout(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.With(slog.String("k", "v")).WithGroup("g").Info("nested",
		slog.Int("n", 1))

	want := strings.Join([]string{
		"{",
		"  level: INFO,",
		"  msg: nested,",
		"  k: v,",
		"  g: {",
		"    n: 1",
		"  }",
		"}",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
