package profile

import (
	"slices"
	"testing"
)

func TestProfiler_DisabledModes(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
	}{
		{name: "empty mode", p: Profiler{}},
		{name: "unknown mode", p: Profiler{Mode: "nope", Path: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Enabled() {
				t.Fatalf("Profiler%+v reports enabled", tt.p)
			}

			s := tt.p.Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", s)
			}

			s.Stop()
		})
	}
}

func TestModes_Sorted(t *testing.T) {
	m := Modes()

	if !slices.IsSorted(m) {
		t.Errorf("Modes() = %v is not sorted", m)
	}

	for _, name := range m {
		if !(Profiler{Mode: name}).Enabled() {
			t.Errorf("mode %q not enabled", name)
		}
	}
}
