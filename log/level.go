package log

import (
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// levels lists the named levels from least to most severe.
var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// String returns the lowercase name of the level. Levels between the named
// ones are written as an offset from the nearest lower name, e.g. "info+2".
func (l Level) String() string {
	if l < LevelDebug {
		switch d := int(l - LevelTrace); {
		case d == 0:
			return "trace"
		case d > 0:
			return "trace+" + strconv.Itoa(d)
		default:
			return "trace" + strconv.Itoa(d)
		}
	}

	return strings.ToLower(slog.Level(l).String())
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Unknown names decode as [DefaultLevel]; see [ParseLevel].
func (l *Level) UnmarshalText(text []byte) error {
	*l = ParseLevel(string(text))

	return nil
}

// Levels returns an iterator over the names of all defined log levels.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range levels {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// ParseLevel parses the name of a log level, case-insensitively. Names other
// than "trace" may carry a signed offset as accepted by
// [slog.Level.UnmarshalText]. Unrecognized names return [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

// formatNames is indexed by [Format].
var formatNames = []string{
	FormatText: "text",
	FormatJSON: "json",
}

// String returns the name of the format.
func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Unknown names decode as [DefaultFormat]; see [ParseFormat].
func (f *Format) UnmarshalText(text []byte) error {
	*f = ParseFormat(string(text))

	return nil
}

// Formats returns an iterator over the names of all defined log formats,
// the default first.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(DefaultFormat.String()) {
			return
		}

		for i, name := range formatNames {
			if Format(i) != DefaultFormat && !yield(name) {
				return
			}
		}
	}
}

// ParseFormat parses the name of a log format, case-insensitively.
// Unrecognized names return [DefaultFormat].
func ParseFormat(s string) Format {
	i := slices.Index(formatNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return DefaultFormat
	}

	return Format(i)
}
