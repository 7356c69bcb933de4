// Package fpdfrenderer draws layout documents with codeberg.org/go-pdf/fpdf.
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// fontFamily 是注册到 fpdf 的字体名，每个 Fpdf 实例只使用这一种字体。
const fontFamily = "body"

// Renderer 使用 fpdf 输出 PDF。fpdf 的原点在左上角，y 轴向下，绘制时翻转 y。
type Renderer struct{}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates an fpdf-based renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Measurer 返回一个只用于测量的 fpdf 实例。返回值不能并发使用。
func (r *Renderer) Measurer(font *fonts.Font, size float64) (layout.TextMeasurer, error) {
	// 测量与页面尺寸无关，这里用 A4 即可。
	pdf, err := newPDF(595.276, 841.89, font, size)
	if err != nil {
		return nil, err
	}
	return &measurer{pdf: pdf}, nil
}

type measurer struct {
	pdf *fpdf.Fpdf
}

func (m *measurer) TextWidth(text string) float64 {
	if text == "" {
		return 0
	}
	return m.pdf.GetStringWidth(text)
}

// Render 输出全部页面（包括没有片段的空白页）。
func (r *Renderer) Render(doc *layout.Document, font *fonts.Font) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("排版结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	height := doc.Geometry.Height
	pdf, err := newPDF(doc.Geometry.Width, height, font, doc.FontSize)
	if err != nil {
		return nil, err
	}
	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetSubject(doc.Meta.Subject, true)
	pdf.SetCreator(doc.Meta.Creator, true)
	pdf.SetKeywords(strings.Join(doc.Meta.Keywords, ", "), true)

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, frag := range page.Fragments {
			if frag.Text == "" {
				continue
			}
			pdf.Text(frag.X, height-frag.Y, frag.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func newPDF(width, height float64, font *fonts.Font, size float64) (*fpdf.Fpdf, error) {
	if font == nil {
		return nil, &fonts.LoadError{Err: fmt.Errorf("缺少字体")}
	}
	if size <= 0 {
		return nil, fmt.Errorf("字号必须为正数：%g", size)
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(fontFamily, "", font.Data)
	if err := pdf.Error(); err != nil {
		return nil, &fonts.LoadError{Src: font.Src, Err: err}
	}
	pdf.SetFont(fontFamily, "", size)
	if err := pdf.Error(); err != nil {
		return nil, &fonts.LoadError{Src: font.Src, Err: err}
	}
	return pdf, nil
}
