package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltin(t *testing.T) {
	f, err := Load("builtin:go-regular")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Family == "" || !strings.Contains(f.PostScriptName, "Go") {
		t.Fatalf("unexpected font names: family=%q ps=%q", f.Family, f.PostScriptName)
	}
	if len(f.Data) != len(goregular.TTF) {
		t.Fatalf("font data should be the embedded TTF")
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Src != path {
		t.Fatalf("expected src %s, got %s", path, f.Src)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	if err := os.WriteFile(garbage, []byte("definitely not a font"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	cases := map[string]string{
		"empty src":       "",
		"missing file":    filepath.Join(dir, "DejaVuSans.ttf"),
		"garbage file":    garbage,
		"unknown builtin": "builtin:comic-sans",
	}
	for name, src := range cases {
		_, err := Load(src)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("%s: expected LoadError, got %v", name, err)
		}
		if loadErr.Src != src {
			t.Fatalf("%s: expected src %q, got %q", name, src, loadErr.Src)
		}
	}
	if _, err := Load(filepath.Join(dir, "DejaVuSans.ttf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should wrap os.ErrNotExist, got %v", err)
	}
}

func TestOpenFallsBack(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "DejaVuSans.ttf")
	f, err := Open(missing, "builtin:go-regular")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if f.Src != "builtin:go-regular" {
		t.Fatalf("expected fallback font, got %s", f.Src)
	}
}

func TestOpenReportsPrimaryError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "DejaVuSans.ttf")
	for _, fallback := range []string{"", "builtin:nope"} {
		_, err := Open(missing, fallback)
		var loadErr *LoadError
		if !errors.As(err, &loadErr) || loadErr.Src != missing {
			t.Fatalf("fallback %q: expected primary LoadError, got %v", fallback, err)
		}
	}
}
