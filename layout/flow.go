package layout

import (
	"fmt"
	"iter"
)

// Layout 将文本行依次排入页面，返回完整的排版结果。
//
// 空行表示段落间距，不产生片段；超出可用宽度的行在空格处折行，
// 没有空格的超长行原样输出为一个片段，不在词内强制断开。
// 每输出一行以及每处理完一个输入行后做一次换页检查：y 低于下边距即开新页。
// 只有参数非法时返回错误，排版过程本身不会失败。
func Layout(lines iter.Seq[string], opts Options) (*Document, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: 缺少文本测量器 Measurer")
	}
	if err := opts.Geometry.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	f := newFlow(opts)
	for line := range lines {
		f.addLine(line)
	}
	return f.doc, nil
}

// flow 保存排版光标：当前页（总是 doc.Pages 的最后一页）与基线位置 y。
type flow struct {
	opts   Options
	geom   Geometry
	usable float64
	doc    *Document
	y      float64
}

func newFlow(opts Options) *flow {
	f := &flow{
		opts:   opts,
		geom:   opts.Geometry,
		usable: opts.Geometry.UsableWidth(),
		doc: &Document{
			Geometry: opts.Geometry,
			FontSize: opts.FontSize,
		},
	}
	f.newPage()
	return f
}

func (f *flow) addLine(line string) {
	if line == "" {
		f.y -= f.geom.ParagraphSpacing
		if !f.opts.LegacySpacing {
			f.checkBreak()
		}
		return
	}

	width := f.opts.Measurer.TextWidth(line)
	for width > f.usable {
		cut := f.split(line, width)
		f.emit(line[:cut])
		if cut < len(line) {
			// 丢弃断点处的一个空格
			line = line[cut+1:]
		} else {
			line = ""
		}
		width = f.opts.Measurer.TextWidth(line)
		f.checkBreak()
	}
	if line != "" {
		f.emit(line)
	}
	f.checkBreak()
}

func (f *flow) split(text string, width float64) int {
	if f.opts.Split == SplitProportional {
		return proportionalSplit(text, width, f.usable)
	}
	return greedySplit(text, f.usable, f.opts.Measurer)
}

func (f *flow) emit(text string) {
	page := &f.doc.Pages[len(f.doc.Pages)-1]
	page.Fragments = append(page.Fragments, Fragment{
		Text:  text,
		X:     f.geom.Margin.Left,
		Y:     f.y,
		Width: f.opts.Measurer.TextWidth(text),
	})
	f.y -= f.geom.LineHeight
}

func (f *flow) checkBreak() {
	if f.y < f.geom.Margin.Bottom {
		f.newPage()
	}
}

func (f *flow) newPage() {
	f.doc.Pages = append(f.doc.Pages, Page{Number: len(f.doc.Pages) + 1})
	f.y = f.geom.TopY()
}
