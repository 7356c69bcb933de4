// Package source 将中间文本文件提供为可重复遍历的行序列。
package source

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxLineSize 为单行文本的上限。docx2txt 会把整段内容输出为一行，默认的 64KiB 不够用。
const MaxLineSize = 16 << 20

// OpenError 表示中间文本文件无法读取。
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("无法打开文本文件 %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// File 是基于磁盘文件的行来源，每次调用 Lines 都会从头重新读取。
type File struct {
	path string
	err  error
}

// Open 检查文件可读并返回行来源。
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	f.Close()
	return &File{path: path}, nil
}

// Path 返回文件路径。
func (f *File) Path() string { return f.path }

// Lines 返回文件中的所有行，去掉行尾的 \r 并做 NFC 规范化。
// 规范化可能改写字节（例如 "e\u0301" 合成为 "é"），因此排版得到的
// 片段文本不保证与原始输入逐字节一致，只保证 NFC 等价。
// 读取失败时序列提前结束，错误可通过 Err 获取。
func (f *File) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		f.err = nil
		file, err := os.Open(f.path)
		if err != nil {
			f.err = &OpenError{Path: f.path, Err: err}
			return
		}
		defer file.Close()
		if err := Scan(file, yield); err != nil {
			f.err = fmt.Errorf("读取文本文件 %s 失败: %w", f.path, err)
		}
	}
}

// Err 返回最近一次遍历中遇到的错误。
func (f *File) Err() error { return f.err }

// Scan 逐行读取 r 并交给 yield，yield 返回 false 时停止。
func Scan(r io.Reader, yield func(string) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if !yield(norm.NFC.String(line)) {
			return nil
		}
	}
	return sc.Err()
}

// Strings 把 r 的全部行读入内存，主要用于测试与小文件。
func Strings(r io.Reader) ([]string, error) {
	var lines []string
	err := Scan(r, func(line string) bool {
		lines = append(lines, line)
		return true
	})
	return lines, err
}
