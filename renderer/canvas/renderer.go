package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// Renderer draws layout documents via github.com/tdewolff/canvas.
// Layout coordinates are points with a bottom-left origin; canvas works in
// millimeters, so every coordinate is converted at this boundary.
type Renderer struct {
	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a canvas-based renderer.
func NewRenderer() *Renderer {
	return &Renderer{fontFamilies: map[string]*canvas.FontFamily{}}
}

// Measurer returns a text measurer for font at size (pt).
func (r *Renderer) Measurer(font *fonts.Font, size float64) (layout.TextMeasurer, error) {
	face, err := r.fontFace(font, size)
	if err != nil {
		return nil, err
	}
	return &measurer{face: face}, nil
}

type measurer struct {
	face *canvas.FontFace
}

// TextWidth 返回以 pt 为单位的宽度（canvas 返回 mm）。
func (m *measurer) TextWidth(text string) float64 {
	if text == "" {
		return 0
	}
	return m.face.TextWidth(text) * layout.MmToPt
}

// Render renders every page of doc into a PDF byte slice, empty pages included.
func (r *Renderer) Render(doc *layout.Document, font *fonts.Font) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("排版结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	face, err := r.fontFace(font, doc.FontSize)
	if err != nil {
		return nil, err
	}

	width := doc.Geometry.Width * layout.PtToMm
	height := doc.Geometry.Height * layout.PtToMm

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianI)
		for _, frag := range page.Fragments {
			if frag.Text == "" {
				continue
			}
			line := canvas.NewTextLine(face, frag.Text, canvas.Left)
			ctx.DrawText(frag.X*layout.PtToMm, frag.Y*layout.PtToMm, line)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) fontFace(font *fonts.Font, size float64) (*canvas.FontFace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("字号必须为正数：%g", size)
	}
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font *fonts.Font) (*canvas.FontFamily, error) {
	if font == nil {
		return nil, &fonts.LoadError{Err: fmt.Errorf("缺少字体")}
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[font.Src]; ok {
		return family, nil
	}
	family := canvas.NewFontFamily(font.Family)
	if err := family.LoadFont(font.Data, 0, canvas.FontRegular); err != nil {
		return nil, &fonts.LoadError{Src: font.Src, Err: err}
	}
	r.fontFamilies[font.Src] = family
	return family, nil
}
