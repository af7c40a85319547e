package tmpl

import (
	"errors"
	"log/slog"
	"testing"
)

func TestError_Format(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "message", err: NewError("msg"), want: "msg"},
		{name: "wrapped", err: NewError("msg").Wrap(cause), want: "msg: cause"},
		{
			name: "positioned",
			err:  NewError("msg").WithPosition(Position{Line: 2, Column: 7}).Wrap(cause),
			want: "msg at 2:7: cause",
		},
		{name: "bare", err: WrapError(cause), want: "cause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	derived := ErrDecode.With(slog.String("k", "v")).Wrap(errors.New("x"))

	if !errors.Is(derived, ErrDecode) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrParse) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if WrapError(derived) != derived {
		t.Error("WrapError rewrapped an *Error")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrInvalidPath.
		WithPosition(Position{Line: 1, Column: 3}).
		With(slog.String("path", "a.")).
		Wrap(errors.New("bad"))

	attrs := map[string]string{}
	for _, a := range err.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":  "invalid path",
		"line":   "1",
		"column": "3",
		"cause":  "bad",
		"path":   "a.",
	}

	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attr %q = %q, want %q", k, attrs[k], v)
		}
	}
}
