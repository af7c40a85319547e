package cli

import (
	"testing"

	"github.com/ardnew/tmpl/log"
)

func TestLogConfig_Scan(t *testing.T) {
	original := log.Default()
	defer log.Config(
		log.WithLevel(original.Level()),
		log.WithFormat(original.Format()),
		log.WithPretty(true),
		log.WithCaller(false),
	)

	tests := []struct {
		name       string
		args       []string
		wantLevel  logLevel
		wantFormat logFormat
		wantPretty bool
		wantCaller bool
	}{
		{
			name:       "separate values",
			args:       []string{"render", "--log-level", "debug", "--log-format", "text"},
			wantLevel:  "debug",
			wantFormat: "text",
			wantPretty: true,
		},
		{
			name:       "assigned values",
			args:       []string{"--log-level=trace", "--no-log-pretty", "--log-caller"},
			wantLevel:  "trace",
			wantCaller: true,
		},
		{
			name:       "explicit booleans",
			args:       []string{"--log-pretty=false", "--no-log-caller=false"},
			wantCaller: true,
		},
		{
			name:       "stops at terminator",
			args:       []string{"--", "--log-level", "debug"},
			wantPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.wantLevel || f.Format != tt.wantFormat ||
				f.Pretty != tt.wantPretty || f.Caller != tt.wantCaller {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}
