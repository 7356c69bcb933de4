package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ByLCY/folio/convert"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/extract"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/folio/renderer/fpdf"
)

type cliOptions struct {
	input, output string
	profile       string
	font          string
	textPath      string
	extractor     string
	backend       string
	split         string
	legacy        bool
	keepText      bool
	debug         string
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.input, "in", "CONTRATO.docx", "源文档路径（.txt 直接排版）")
	flag.StringVar(&opts.output, "out", "output.pdf", "PDF 输出路径")
	flag.StringVar(&opts.profile, "profile", "", "排版配置文件路径")
	flag.StringVar(&opts.font, "font", "", "TrueType 字体路径或 builtin:go-regular")
	flag.StringVar(&opts.textPath, "text", "", "中间文本文件路径")
	flag.StringVar(&opts.extractor, "extractor", "", "文本提取命令（默认 docx2txt）")
	flag.StringVar(&opts.backend, "renderer", "canvas", "PDF 后端：canvas 或 fpdf")
	flag.StringVar(&opts.split, "split", "", "折行策略：greedy 或 proportional")
	flag.BoolVar(&opts.legacy, "legacy", false, "与旧版输出保持一致（比例折行，空行后不换页）")
	flag.BoolVar(&opts.keepText, "keep-text", false, "保留中间文本文件")
	flag.StringVar(&opts.debug, "debug", "", "排版调试 JSON 输出路径")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr, "folio: ", log.LstdFlags)
	if err := run(ctx, opts, logger); err != nil {
		stop()
		logger.Print(err)
		var extractErr *extract.Error
		if errors.As(err, &extractErr) {
			os.Exit(extractErr.ExitCode)
		}
		os.Exit(1)
	}
	fmt.Printf("PDF 已生成：%s\n", opts.output)
}

// run 串联配置解析、提取、排版与渲染。
func run(ctx context.Context, opts cliOptions, logger *log.Logger) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	r, err := newRenderer(opts.backend)
	if err != nil {
		return err
	}

	c := convert.New(settings, r)
	c.Extractor.Stderr = os.Stderr
	c.DebugPath = opts.debug
	c.KeepIntermediate = opts.keepText
	c.Logger = logger
	_, err = c.Convert(ctx, opts.input, opts.output)
	return err
}

// loadSettings 读取 profile（可选），再用命令行参数覆盖。
func loadSettings(opts cliOptions) (layout.Settings, error) {
	settings := layout.DefaultSettings()
	if opts.profile != "" {
		file, err := os.Open(opts.profile)
		if err != nil {
			return settings, fmt.Errorf("无法打开配置文件 %s: %w", opts.profile, err)
		}
		defer file.Close()
		p, err := dsl.Parse(file)
		if err != nil {
			return settings, fmt.Errorf("解析配置文件失败: %w", err)
		}
		if settings, err = layout.Configure(p); err != nil {
			return settings, fmt.Errorf("配置无效: %w", err)
		}
	}

	if opts.font != "" {
		settings.Font.Src = opts.font
	}
	if opts.textPath != "" {
		settings.IntermediatePath = opts.textPath
	}
	if opts.extractor != "" {
		settings.ExtractCommand = opts.extractor
	}
	if opts.legacy {
		settings.Split = layout.SplitProportional
		settings.LegacySpacing = true
	}
	if opts.split != "" {
		mode, ok := layout.ParseSplitMode(opts.split)
		if !ok {
			return settings, fmt.Errorf("未知的折行策略：%s", opts.split)
		}
		settings.Split = mode
	}
	return settings, nil
}

func newRenderer(name string) (renderer.Renderer, error) {
	switch name {
	case "", "canvas":
		return canvasrenderer.NewRenderer(), nil
	case "fpdf":
		return fpdfrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("未知的渲染后端：%s", name)
	}
}
