package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/tmpl/pkg"
)

func TestSearchPath_IncludeFirst(t *testing.T) {
	envA, envB, inc := t.TempDir(), t.TempDir(), t.TempDir()

	t.Setenv(pkg.PathEnv, strings.Join([]string{envA, envB}, string(os.PathListSeparator)))

	got := searchPath(inc)

	want := []string{inc, envA, envB}
	if !slices.Equal(got, want) {
		t.Errorf("searchPath = %v, want %v", got, want)
	}
}

func TestSearchPath_Empty(t *testing.T) {
	t.Setenv(pkg.PathEnv, "")

	if got := searchPath(); len(got) != 0 {
		t.Errorf("searchPath = %v, want empty", got)
	}
}

func TestConfigPath(t *testing.T) {
	got := configPath("config.yaml")

	if filepath.Base(got) != "config.yaml" || filepath.Dir(got) != configDir() {
		t.Errorf("configPath = %q, want file under %q", got, configDir())
	}
}
