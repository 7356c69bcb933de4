// Package extract 调用外部命令把源文档转换为纯文本。
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrEmptyOutput 表示外部命令成功退出，但没有生成文本或文本为空。
var ErrEmptyOutput = errors.New("生成的文本文件为空或不存在")

// Error 描述一次失败的提取。ExitCode 为外部命令的退出码，无法获取时为 1。
type Error struct {
	Command  string
	Source   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("转换 %s 为文本失败 (%s, 退出码 %d): %v", e.Source, e.Command, e.ExitCode, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor 运行外部转换命令。Args 中的 {src} 与 {dst} 会被替换为源文件与输出路径。
type Extractor struct {
	Command string
	Args    []string
	// Stderr 额外接收命令的标准错误输出，可为空。
	Stderr io.Writer
}

// DefaultArgs 对应 `docx2txt <src> <dst>`。
var DefaultArgs = []string{"{src}", "{dst}"}

// New 创建使用默认参数的提取器。
func New(command string) *Extractor {
	return &Extractor{Command: command}
}

// Extract 把 src 转换为 dst 处的文本文件并返回文本路径。
// .txt 源文件无需转换，直接返回 src，但空文件同样报 ErrEmptyOutput；
// 不存在的 .txt 原样返回，由读取方报告。不做任何重试。
func (e *Extractor) Extract(ctx context.Context, src, dst string) (string, error) {
	if strings.EqualFold(filepath.Ext(src), ".txt") {
		if info, err := os.Stat(src); err == nil && info.Size() == 0 {
			return "", &Error{Source: src, ExitCode: 1, Err: ErrEmptyOutput}
		}
		return src, nil
	}
	if e == nil || e.Command == "" {
		return "", &Error{Source: src, ExitCode: 1, Err: errors.New("未配置文本提取命令")}
	}

	args := e.Args
	if len(args) == 0 {
		args = DefaultArgs
	}
	expanded := make([]string, len(args))
	r := strings.NewReplacer("{src}", src, "{dst}", dst)
	for i, a := range args {
		expanded[i] = r.Replace(a)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Command, expanded...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Stderr)
	}
	if err := cmd.Run(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		}
		return "", &Error{
			Command:  e.Command,
			Source:   src,
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	info, err := os.Stat(dst)
	if err != nil || info.Size() == 0 {
		return "", &Error{Command: e.Command, Source: src, ExitCode: 1, Err: ErrEmptyOutput}
	}
	return dst, nil
}
