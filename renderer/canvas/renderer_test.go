package canvasrenderer

import (
	"math"
	"testing"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/internal/pdftest"
	"github.com/ByLCY/folio/layout"
)

func loadFont(t *testing.T) *fonts.Font {
	t.Helper()
	f, err := fonts.Load("builtin:go-regular")
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	return f
}

func TestMeasurerReturnsPoints(t *testing.T) {
	r := NewRenderer()
	font := loadFont(t)

	m12, err := r.Measurer(font, 12)
	if err != nil {
		t.Fatalf("Measurer error: %v", err)
	}
	m24, err := r.Measurer(font, 24)
	if err != nil {
		t.Fatalf("Measurer error: %v", err)
	}

	w := m12.TextWidth("Hello world")
	// 12pt 的 11 个字符宽度应在 30pt 到 132pt 之间
	if w < 30 || w > 132 {
		t.Fatalf("unexpected width for 12pt text: %g", w)
	}
	if got := m24.TextWidth("Hello world"); math.Abs(got-2*w) > 0.02*w {
		t.Fatalf("width should scale with font size: 12pt=%g 24pt=%g", w, got)
	}
	if m12.TextWidth("") != 0 {
		t.Fatalf("empty text should measure 0")
	}
	if m12.TextWidth("Hello world, again") <= w {
		t.Fatalf("longer text should be wider")
	}
	if n := len(r.fontFamilies); n != 1 {
		t.Fatalf("expected font family to be cached once, got %d", n)
	}
}

func TestMeasurerRejectsBadInput(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Measurer(nil, 12); err == nil {
		t.Fatalf("expected error for nil font")
	}
	if _, err := r.Measurer(loadFont(t), 0); err == nil {
		t.Fatalf("expected error for zero size")
	}
	bad := &fonts.Font{Src: "broken.ttf", Family: "Broken", Data: []byte("nope")}
	if _, err := r.Measurer(bad, 12); err == nil {
		t.Fatalf("expected error for unparsable font data")
	}
}

func TestRenderWritesEveryPage(t *testing.T) {
	r := NewRenderer()
	font := loadFont(t)
	m, err := r.Measurer(font, 12)
	if err != nil {
		t.Fatalf("Measurer error: %v", err)
	}

	settings := layout.DefaultSettings()
	lines := make([]string, 0, 60)
	for range 60 {
		lines = append(lines, "Cláusula primeira: as partes acordam o seguinte.")
	}
	doc, err := layout.Layout(sliceSeq(lines), settings.Options(m))
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	doc.Meta = layout.DocumentMeta{Title: "Contrato", Author: "Folio", Keywords: []string{"a", "b"}}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages from layout, got %d", len(doc.Pages))
	}

	data, err := r.Render(doc, font)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := pdftest.PageCount(t, data); got != len(doc.Pages) {
		t.Fatalf("expected %d pdf pages, got %d", len(doc.Pages), got)
	}
}

func TestRenderKeepsBlankPages(t *testing.T) {
	r := NewRenderer()
	doc := &layout.Document{
		Geometry: layout.DefaultSettings().Geometry,
		FontSize: 12,
		Pages: []layout.Page{
			{Number: 1, Fragments: []layout.Fragment{{Text: "only", X: 50, Y: 792}, {Text: "", X: 50, Y: 777}}},
			{Number: 2},
			{Number: 3},
		},
	}
	data, err := r.Render(doc, loadFont(t))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := pdftest.PageCount(t, data); got != 3 {
		t.Fatalf("expected 3 pdf pages, got %d", got)
	}
}

func TestRenderRejectsEmptyDocument(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil, loadFont(t)); err == nil {
		t.Fatalf("expected error for nil document")
	}
	if _, err := r.Render(&layout.Document{FontSize: 12}, loadFont(t)); err == nil {
		t.Fatalf("expected error for document without pages")
	}
}
