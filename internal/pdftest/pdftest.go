// Package pdftest 提供测试用的 PDF 读取辅助函数。
package pdftest

import (
	"bytes"
	"os"
	"testing"

	"github.com/ledongthuc/pdf"
)

// PageCount 解析 data 并返回页数，解析失败时直接终止测试。
func PageCount(t testing.TB, data []byte) int {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF (prefix %q)", head(data))
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse pdf: %v", err)
	}
	return r.NumPage()
}

// FilePageCount 读取 path 处的 PDF 并返回页数。
func FilePageCount(t testing.TB, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	return PageCount(t, data)
}

func head(data []byte) []byte {
	if len(data) > 8 {
		return data[:8]
	}
	return data
}
