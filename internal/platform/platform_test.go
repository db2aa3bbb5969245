package platform

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestVersion_NeverEmpty(t *testing.T) {
	v := Version(context.Background())
	if v == "" {
		t.Fatal("Version returned an empty string")
	}
	if !strings.Contains(v, " ") {
		t.Errorf("Version = %q, want \"<OS-name> <version-string>\"", v)
	}
}

func TestVersion_OSPrefix(t *testing.T) {
	v := Version(context.Background())
	prefixes := map[string]string{
		"linux":   "Linux ",
		"windows": "Windows ",
		"darwin":  "macOS ",
	}
	want, ok := prefixes[runtime.GOOS]
	if !ok {
		want = runtime.GOOS + " "
	}
	// The darwin kernel fallback uses "Darwin "; accept either there.
	if runtime.GOOS == "darwin" && strings.HasPrefix(v, "Darwin ") {
		return
	}
	if !strings.HasPrefix(v, want) {
		t.Errorf("Version = %q, want %q prefix", v, want)
	}
}

func TestVersion_Deterministic(t *testing.T) {
	first := Version(context.Background())
	second := Version(context.Background())
	if first != second {
		t.Errorf("consecutive calls differ: %q vs %q", first, second)
	}
}
