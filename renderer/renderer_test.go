package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
)

type stubRenderer struct {
	data []byte
	err  error
}

func (s stubRenderer) Measurer(*fonts.Font, float64) (layout.TextMeasurer, error) {
	return layout.MeasureFunc(func(text string) float64 { return float64(len(text)) }), nil
}

func (s stubRenderer) Render(*layout.Document, *fonts.Font) ([]byte, error) {
	return s.data, s.err
}

func TestWriteFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "contract.pdf")
	if err := WriteFile(stubRenderer{data: []byte("%PDF-1.7")}, &layout.Document{}, nil, path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-1.7" {
		t.Fatalf("unexpected file content %q (%v)", data, err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestWriteFileRenderFailureKeepsExistingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.pdf")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}
	boom := errors.New("boom")
	err := WriteFile(stubRenderer{err: boom}, &layout.Document{}, nil, path)
	var createErr *CreateError
	if !errors.As(err, &createErr) || !errors.Is(err, boom) {
		t.Fatalf("expected CreateError wrapping boom, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Fatalf("existing output should be untouched, got %q", data)
	}
}

func TestWriteFileReportsWriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}
	path := filepath.Join(blocker, "contract.pdf")
	err := WriteFile(stubRenderer{data: []byte("%PDF")}, &layout.Document{}, nil, path)
	var writeErr *WriteError
	if !errors.As(err, &writeErr) || writeErr.Path != path {
		t.Fatalf("expected WriteError for %s, got %v", path, err)
	}
}
