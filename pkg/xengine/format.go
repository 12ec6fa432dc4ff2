package xengine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DirFunc 目录命名函数：根目录 + 周期键 → 周期目录路径。
type DirFunc func(root, periodKey string) string

// FileFunc 文件命名函数：周期目录 + 级别名称 → 日志文件路径。
type FileFunc func(dir, severity string) string

// FormatFunc 消息格式化函数。
//
// severityLabel 是带颜色标记的级别标签（xansi 标记文本）；
// 返回的字符串仍含标记，控制台变体与文件变体由引擎统一翻译。
type FormatFunc func(timeText, severityLabel, name string, lines []string) string

// DefaultDir 默认目录命名：<root>/<periodKey>。
func DefaultDir(root, periodKey string) string {
	return filepath.Join(root, periodKey)
}

// DefaultFile 默认文件命名：<dir>/<级别小写>.log。
func DefaultFile(dir, severity string) string {
	return filepath.Join(dir, strings.ToLower(severity)+".log")
}

// DefaultFormat 默认行格式：[时间] - 级别 - 名称 - 内容。
//
// 多行内容每行重复同一前缀，行间以换行符连接。
func DefaultFormat(timeText, severityLabel, name string, lines []string) string {
	prefix := fmt.Sprintf("[%s] - %s - %s - ", timeText, severityLabel, name)
	if len(lines) == 0 {
		return prefix
	}
	if len(lines) == 1 {
		return prefix + lines[0]
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}
