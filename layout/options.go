package layout

import "strings"

// Options 配置排版阶段所需的依赖与策略。
type Options struct {
	Geometry Geometry
	Measurer TextMeasurer
	FontSize float64 // 仅记录到 Document，供渲染器使用
	Split    SplitMode
	// LegacySpacing 为 true 时，空行产生的段落间距之后不做换页检查，
	// 与旧版输出逐字节一致（连续空行可以把 y 推到页面之外）。
	LegacySpacing bool
}

// TextMeasurer 返回文本在已绑定字体与字号下的渲染宽度（pt）。
type TextMeasurer interface {
	TextWidth(text string) float64
}

// MeasureFunc 让普通函数满足 TextMeasurer。
type MeasureFunc func(text string) float64

func (f MeasureFunc) TextWidth(text string) float64 { return f(text) }

// SplitMode 选择折行断点的计算方式。
type SplitMode int

const (
	// SplitGreedy 在空格处寻找宽度不超过可用宽度的最长前缀。
	SplitGreedy SplitMode = iota
	// SplitProportional 按宽度比例估算断点位置，再回退到此前最近的空格。
	SplitProportional
)

func (m SplitMode) String() string {
	switch m {
	case SplitProportional:
		return "proportional"
	default:
		return "greedy"
	}
}

// ParseSplitMode 解析 greedy / proportional（legacy 为 proportional 的别名）。
func ParseSplitMode(v string) (SplitMode, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "greedy", "exact":
		return SplitGreedy, true
	case "proportional", "legacy":
		return SplitProportional, true
	default:
		return SplitGreedy, false
	}
}
