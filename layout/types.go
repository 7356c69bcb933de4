package layout

import "fmt"

// 该文件定义排版结果与几何描述，供排版引擎、渲染器与调试 JSON 共用。
// 所有长度单位均为 pt（1in = 72pt），y 轴向上，原点位于页面左下角。

// Document 保存排版后的全部页面。创建时即包含一张空白页，之后只增不减。
type Document struct {
	Geometry Geometry     `json:"geometry"`
	FontSize float64      `json:"fontSize"`
	Meta     DocumentMeta `json:"meta"`
	Pages    []Page       `json:"pages"`
}

// Page 记录页码与按绘制顺序排列的文本片段。
type Page struct {
	Number    int        `json:"number"`
	Fragments []Fragment `json:"fragments"`
}

// Fragment 表示一行已经确定坐标的文本，(X, Y) 为基线起点。
type Fragment struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// Geometry 描述页面尺寸、边距以及行距。
type Geometry struct {
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	Margin           Margin  `json:"margin"`
	LineHeight       float64 `json:"lineHeight"`
	ParagraphSpacing float64 `json:"paragraphSpacing"`
}

// Margin 以 pt 为单位。Top 决定换页后光标的起点，Bottom 为换页阈值。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UsableWidth 返回一行文本可用的水平宽度。
func (g Geometry) UsableWidth() float64 {
	return g.Width - g.Margin.Left - g.Margin.Right
}

// TopY 返回新页面第一行的基线位置。
func (g Geometry) TopY() float64 {
	return g.Height - g.Margin.Top
}

// Validate 检查几何参数是否能够排出至少一行文本。
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("页面尺寸无效：%gx%g", g.Width, g.Height)
	case g.LineHeight <= 0:
		return fmt.Errorf("行高必须为正数：%g", g.LineHeight)
	case g.ParagraphSpacing < 0:
		return fmt.Errorf("段落间距不能为负数：%g", g.ParagraphSpacing)
	case g.Margin.Top < 0 || g.Margin.Bottom < 0 || g.Margin.Left < 0 || g.Margin.Right < 0:
		return fmt.Errorf("边距不能为负数：%+v", g.Margin)
	case g.Margin.Top+g.Margin.Bottom >= g.Height:
		return fmt.Errorf("上下边距 %g+%g 超出页面高度 %g", g.Margin.Top, g.Margin.Bottom, g.Height)
	case g.UsableWidth() <= 0:
		return fmt.Errorf("左右边距 %g+%g 超出页面宽度 %g", g.Margin.Left, g.Margin.Right, g.Width)
	}
	return nil
}

// FontResource 描述正文字体，src 可以是文件路径或 builtin:* 形式。
type FontResource struct {
	Name     string  `json:"name"`
	Src      string  `json:"src"`
	Fallback string  `json:"fallback,omitempty"`
	Size     float64 `json:"size"` // pt
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
