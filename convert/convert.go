// Package convert 串联文本提取、排版与渲染，完成一次文档转换。
package convert

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/extract"
	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
	"github.com/ByLCY/folio/source"
)

// Converter 保存一次转换的配置与协作组件。
type Converter struct {
	Settings  layout.Settings
	Extractor *extract.Extractor
	Renderer  renderer.Renderer
	// DebugPath 非空时输出排版结果 JSON。
	DebugPath string
	// KeepIntermediate 为 true 时保留提取得到的中间文本文件。
	KeepIntermediate bool
	Logger           *log.Logger
	// Now 用于 ${date} 占位符，为空时取当前时间。
	Now func() time.Time
}

// New 使用给定配置与渲染器创建转换器，提取命令取自配置。
func New(settings layout.Settings, r renderer.Renderer) *Converter {
	return &Converter{
		Settings:  settings,
		Extractor: &extract.Extractor{Command: settings.ExtractCommand, Args: settings.ExtractArgs},
		Renderer:  r,
	}
}

// Convert 将 src 转换为 dst 处的 PDF，并返回排版结果。
// 任何一步失败都会立即返回，不做重试；失败时 dst 不会被写入。
func (c *Converter) Convert(ctx context.Context, src, dst string) (*layout.Document, error) {
	if c.Renderer == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}

	textPath, err := c.Extractor.Extract(ctx, src, c.Settings.IntermediatePath)
	if err != nil {
		// 提取失败时命令可能已经写出部分内容，不能留给下一次运行。
		if dst := c.Settings.IntermediatePath; dst != src && !c.KeepIntermediate {
			os.Remove(dst)
		}
		return nil, err
	}
	if textPath != src && !c.KeepIntermediate {
		defer os.Remove(textPath)
	}
	c.logf("已提取文本：%s", textPath)

	lines, err := source.Open(textPath)
	if err != nil {
		return nil, err
	}

	font, err := fonts.Open(c.Settings.Font.Src, c.Settings.Font.Fallback)
	if err != nil {
		return nil, err
	}
	if font.Src != c.Settings.Font.Src {
		c.logf("字体 %s 不可用，改用 %s", c.Settings.Font.Src, font.Src)
	}
	measurer, err := c.Renderer.Measurer(font, c.Settings.Font.Size)
	if err != nil {
		return nil, err
	}

	doc, err := layout.Layout(lines.Lines(), c.Settings.Options(measurer))
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	doc.Meta = c.meta(src, len(doc.Pages))
	c.logf("排版完成：%d 页", len(doc.Pages))

	if c.DebugPath != "" {
		if err := layout.WriteDebugJSON(doc, c.DebugPath); err != nil {
			return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	if err := renderer.WriteFile(c.Renderer, doc, font, dst); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Converter) meta(src string, pages int) layout.DocumentMeta {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	vars := binding.Vars(src, pages, now())
	m := c.Settings.Meta
	m.Title = binding.Interpolate(m.Title, vars)
	m.Author = binding.Interpolate(m.Author, vars)
	m.Subject = binding.Interpolate(m.Subject, vars)
	m.Creator = binding.Interpolate(m.Creator, vars)
	if len(m.Keywords) > 0 {
		keywords := make([]string, len(m.Keywords))
		for i, k := range m.Keywords {
			keywords[i] = binding.Interpolate(k, vars)
		}
		m.Keywords = keywords
	}
	return m
}

func (c *Converter) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
