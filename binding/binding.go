package binding

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${source.stem} 等占位符替换为 vars 中的值。
// 未知的占位符保持原样。
func Interpolate(text string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := vars[key]; ok {
			return val
		}
		return match
	})
}

// Vars 返回一次转换可用的占位符：
// source.path / source.name / source.stem / source.dir、pages 以及 date（YYYY-MM-DD）。
func Vars(sourcePath string, pages int, now time.Time) map[string]string {
	name := filepath.Base(sourcePath)
	return map[string]string{
		"source.path": sourcePath,
		"source.name": name,
		"source.stem": strings.TrimSuffix(name, filepath.Ext(name)),
		"source.dir":  filepath.Dir(sourcePath),
		"pages":       strconv.Itoa(pages),
		"date":        now.Format(time.DateOnly),
	}
}
