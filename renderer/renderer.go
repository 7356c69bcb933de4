package renderer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
)

// Renderer 将排版结果输出为最终文件，同时为排版阶段提供文本测量能力。
// Render 返回生成的 PDF 字节。
type Renderer interface {
	Measurer(font *fonts.Font, size float64) (layout.TextMeasurer, error)
	Render(doc *layout.Document, font *fonts.Font) ([]byte, error)
}

// CreateError 表示 PDF 文档创建或绘制失败。
type CreateError struct {
	Err error
}

func (e *CreateError) Error() string { return fmt.Sprintf("渲染 PDF 失败: %v", e.Err) }

func (e *CreateError) Unwrap() error { return e.Err }

// WriteError 表示 PDF 写入磁盘失败。
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("写入 PDF 文件 %s 失败: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteFile 渲染文档并写入 path。先写临时文件再重命名，失败时 path 不会留下残缺文件。
func WriteFile(r Renderer, doc *layout.Document, font *fonts.Font, path string) error {
	data, err := r.Render(doc, font)
	if err != nil {
		return &CreateError{Err: err}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
