// Package fonts 负责加载并校验正文使用的 TrueType 字体。
package fonts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
)

// builtins 为随程序分发的字体，可写作 "builtin:go-regular"。
var builtins = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-mono":    gomono.TTF,
}

// LoadError 表示字体文件缺失、不可读或不是有效的 TrueType 字体。
type LoadError struct {
	Src string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("加载字体 %s 失败: %v", e.Src, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Font 是已经通过校验的字体数据。
type Font struct {
	Src            string
	Family         string
	PostScriptName string
	Data           []byte
}

// Open 加载 src 指向的字体；失败且配置了 fallback 时改用 fallback。
// 两者都失败时返回 src 的错误。
func Open(src, fallback string) (*Font, error) {
	f, err := Load(src)
	if err == nil || fallback == "" || fallback == src {
		return f, err
	}
	if fb, fbErr := Load(fallback); fbErr == nil {
		return fb, nil
	}
	return nil, err
}

// Load 读取字体数据并用 sfnt 解析，要求字体带有 glyf 轮廓。
func Load(src string) (*Font, error) {
	if src == "" {
		return nil, &LoadError{Src: src, Err: errors.New("未指定字体路径")}
	}
	data, err := readSource(src)
	if err != nil {
		return nil, &LoadError{Src: src, Err: err}
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Src: src, Err: fmt.Errorf("无法解析字体: %w", err)}
	}
	if !info.IsGlyf() {
		return nil, &LoadError{Src: src, Err: errors.New("不是 TrueType 字体（缺少 glyf 轮廓）")}
	}
	family := info.FamilyName
	if family == "" {
		family = "Body"
	}
	return &Font{
		Src:            src,
		Family:         family,
		PostScriptName: info.PostScriptName(),
		Data:           data,
	}, nil
}

func readSource(src string) ([]byte, error) {
	if name, ok := strings.CutPrefix(src, "builtin:"); ok {
		data, found := builtins[name]
		if !found {
			return nil, fmt.Errorf("找不到内置字体 %s", name)
		}
		return data, nil
	}
	return os.ReadFile(src)
}
