package layout

import (
	"sort"
	"strings"
)

// greedySplit 返回以空格结尾、宽度不超过 limit 的最长前缀长度（字节）。
// 前缀宽度随断点单调不减，因此对空格位置做二分查找。
// 没有可容纳的前缀时退回到第一个空格，让超长单词独占一行；
// 没有空格时返回整个文本长度。位于下标 0 的空格不作为断点。
func greedySplit(text string, limit float64, m TextMeasurer) int {
	var spaces []int
	for i := 1; i < len(text); i++ {
		if text[i] == ' ' {
			spaces = append(spaces, i)
		}
	}
	if len(spaces) == 0 {
		return len(text)
	}
	n := sort.Search(len(spaces), func(i int) bool {
		return m.TextWidth(text[:spaces[i]]) > limit
	})
	if n == 0 {
		return spaces[0]
	}
	return spaces[n-1]
}

// proportionalSplit 按 limit/width 的比例估算断点下标，再取该下标及之前最近的空格。
// 估算在单精度下进行，与旧版输出保持一致；找不到空格时返回整个文本长度。
func proportionalSplit(text string, width, limit float64) int {
	pos := int(float32(len(text)) * float32(limit) / float32(width))
	if pos < 0 {
		pos = 0
	}
	if pos >= len(text) {
		pos = len(text) - 1
	}
	if i := strings.LastIndexByte(text[:pos+1], ' '); i >= 0 {
		return i
	}
	return len(text)
}
