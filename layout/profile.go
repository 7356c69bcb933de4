package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/dsl"
)

// 默认值与旧版转换器保持一致：A4 纵向、50pt 边距、15pt 行高、30pt 段落间距、12pt DejaVuSans。
const (
	DefaultFontPath         = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	DefaultFontSize         = 12.0
	DefaultIntermediatePath = "output.txt"
	DefaultExtractCommand   = "docx2txt"
	defaultMargin           = 50.0
	defaultLineHeight       = 15.0
	defaultParagraphSpacing = 30.0
)

// Settings 汇总一次转换所需的全部配置，可由 profile 文件生成，再由命令行参数覆盖。
type Settings struct {
	Geometry         Geometry     `json:"geometry"`
	Font             FontResource `json:"font"`
	Meta             DocumentMeta `json:"meta"`
	Split            SplitMode    `json:"split"`
	LegacySpacing    bool         `json:"legacySpacing"`
	ExtractCommand   string       `json:"extractCommand"`
	ExtractArgs      []string     `json:"extractArgs,omitempty"`
	IntermediatePath string       `json:"intermediatePath"`
}

// Options 基于配置与测量器构造排版参数。
func (s Settings) Options(m TextMeasurer) Options {
	return Options{
		Geometry:      s.Geometry,
		Measurer:      m,
		FontSize:      s.Font.Size,
		Split:         s.Split,
		LegacySpacing: s.LegacySpacing,
	}
}

// DefaultSettings 返回与旧版转换器相同的配置。
func DefaultSettings() Settings {
	size := pagePresets["A4"]
	return Settings{
		Geometry: Geometry{
			Width:            size[0],
			Height:           size[1],
			Margin:           Margin{Top: defaultMargin, Right: defaultMargin, Bottom: defaultMargin, Left: defaultMargin},
			LineHeight:       defaultLineHeight,
			ParagraphSpacing: defaultParagraphSpacing,
		},
		Font: FontResource{
			Name: "Body",
			Src:  DefaultFontPath,
			Size: DefaultFontSize,
		},
		Meta:             DocumentMeta{Creator: "Folio"},
		ExtractCommand:   DefaultExtractCommand,
		IntermediatePath: DefaultIntermediatePath,
	}
}

// pagePresets 以 pt 为单位（与 libharu 的预设尺寸一致）。
var pagePresets = map[string][2]float64{
	"A4":     {595.276, 841.89},
	"A5":     {419.528, 595.276},
	"LETTER": {612, 792},
}

// Configure 在默认配置之上应用 profile 中的各个段落。
func Configure(p *dsl.Profile) (Settings, error) {
	s := DefaultSettings()
	if p == nil {
		return s, nil
	}
	// 行高可能是字号的倍数，需要在字体段落之后解析。
	var lineHeight *LineHeightSpec
	for _, section := range p.Sections {
		var err error
		switch {
		case section.Meta != nil:
			err = applyMeta(&s.Meta, section.Meta.Block)
		case section.Resources != nil:
			err = applyResources(&s.Font, section.Resources.Block)
		case section.Extract != nil:
			err = applyExtract(&s, section.Extract.Block)
		case section.Page != nil:
			lineHeight, err = applyPage(&s, section.Page)
		}
		if err != nil {
			return s, fmt.Errorf("%s 段落: %w", section.Kind(), err)
		}
	}
	if lineHeight != nil {
		s.Geometry.LineHeight = lineHeight.Resolve(s.Font.Size)
	}
	if err := s.Geometry.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func applyMeta(meta *DocumentMeta, block *dsl.Block) error {
	for _, a := range assignments(block) {
		switch strings.ToLower(a.Key) {
		case "title":
			meta.Title = valueToString(a.Value)
		case "author":
			meta.Author = valueToString(a.Value)
		case "subject":
			meta.Subject = valueToString(a.Value)
		case "creator":
			meta.Creator = valueToString(a.Value)
		case "keywords":
			meta.Keywords = valueToStringSlice(a.Value)
		default:
			return fmt.Errorf("未知的元信息字段 %q", a.Key)
		}
	}
	return nil
}

// applyResources 读取第一个 font 声明作为正文字体。
func applyResources(font *FontResource, block *dsl.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		cmd := stmt.Command
		if cmd == nil || cmd.Name != "font" {
			continue
		}
		if len(cmd.Args) > 0 {
			font.Name = cmd.Args[0].Value
		}
		for _, a := range assignments(cmd.Block) {
			switch a.Key {
			case "src":
				font.Src = valueToString(a.Value)
			case "fallback":
				font.Fallback = valueToString(a.Value)
			case "size":
				l, err := ParseLength(valueToString(a.Value))
				if err != nil {
					return err
				}
				if l.ToPT() <= 0 {
					return fmt.Errorf("字号必须为正数：%s", valueToString(a.Value))
				}
				font.Size = l.ToPT()
			default:
				return fmt.Errorf("字体 %s 含未知字段 %q", font.Name, a.Key)
			}
		}
		return nil
	}
	return nil
}

func applyExtract(s *Settings, block *dsl.Block) error {
	for _, a := range assignments(block) {
		switch a.Key {
		case "command":
			s.ExtractCommand = valueToString(a.Value)
		case "args":
			s.ExtractArgs = valueToStringSlice(a.Value)
		case "intermediate":
			s.IntermediatePath = valueToString(a.Value)
		default:
			return fmt.Errorf("未知的提取配置 %q", a.Key)
		}
	}
	return nil
}

func applyPage(s *Settings, section *dsl.PageSection) (*LineHeightSpec, error) {
	width, height, err := resolvePageSize(section.Spec)
	if err != nil {
		return nil, err
	}
	s.Geometry.Width, s.Geometry.Height = width, height
	if m, ok, err := resolveMargin(section.Spec.Params); err != nil {
		return nil, err
	} else if ok {
		s.Geometry.Margin = m
	}

	var lineHeight *LineHeightSpec
	for _, a := range assignments(section.Block) {
		raw := valueToString(a.Value)
		switch a.Key {
		case "line-height":
			spec, err := ParseLineHeight(raw)
			if err != nil {
				return nil, err
			}
			lineHeight = &spec
		case "paragraph-spacing":
			l, err := ParseLength(raw)
			if err != nil {
				return nil, err
			}
			s.Geometry.ParagraphSpacing = l.ToPT()
		case "split":
			mode, ok := ParseSplitMode(raw)
			if !ok {
				return nil, fmt.Errorf("未知的折行策略 %q", raw)
			}
			s.Split = mode
		case "legacy-spacing":
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("legacy-spacing 需要布尔值: %w", err)
			}
			s.LegacySpacing = v
		default:
			return nil, fmt.Errorf("未知的页面配置 %q", a.Key)
		}
	}
	return lineHeight, nil
}

func resolvePageSize(spec dsl.PageSpec) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}
	width, height := base[0], base[1]
	for _, token := range spec.Params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return width, height, nil
}

// resolveMargin 按 CSS 语义解析 margin 后的 1~4 个长度：
// 1 个：四边相同；2 个：上下、左右；3 个：上、左右、下；4 个：上 右 下 左，多余的忽略。
func resolveMargin(params []*dsl.Lexeme) (Margin, bool, error) {
	for i, token := range params {
		if token.Value != "margin" {
			continue
		}
		var vals []float64
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			if params[j].Type != "Number" {
				break
			}
			l, err := ParseLength(params[j].Value)
			if err != nil {
				return Margin{}, false, err
			}
			vals = append(vals, l.ToPT())
		}
		switch len(vals) {
		case 0:
			return Margin{}, false, fmt.Errorf("margin 缺少长度")
		case 1:
			v := vals[0]
			return Margin{Top: v, Right: v, Bottom: v, Left: v}, true, nil
		case 2:
			return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, true, nil
		case 3:
			return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, true, nil
		default:
			return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, true, nil
		}
	}
	return Margin{}, false, nil
}

func assignments(block *dsl.Block) []*dsl.Assignment {
	if block == nil {
		return nil
	}
	var out []*dsl.Assignment
	for _, stmt := range block.Statements {
		if stmt.Assignment != nil {
			out = append(out, stmt.Assignment)
		}
	}
	return out
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Expr != nil:
		return val.Expr.Text()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}
