package xfs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
// Linux 内核在 VFS 层会在空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 同时将 '/' 和 '\' 视为分隔符，以检测 Windows 风格路径穿越（即使在 Linux 上）。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizeRoot 对日志根目录路径做格式净化。
//
// 功能：
//   - 路径规范化（消除 . 和冗余斜杠）
//   - 拒绝空路径和空字节
//   - 阻止相对路径穿越（".." 作为独立路径段）
//
// 安全边界：仅做格式校验，不做目录隔离。绝对路径中的 ".."
// 会被 filepath.Clean 正常解析（如 "/var/log/../tmp" -> "/tmp"），
// 这是合法的绝对路径而非穿越。
//
// 设计决策: 不使用 strings.Contains(path, "..") 检测穿越，
// 会误伤合法目录名（如 "logs..2026"）；按路径段精确判断。
func SanitizeRoot(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("root directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(path) {
		return "", fmt.Errorf("root contains null byte: %w", ErrNullByte)
	}

	cleaned := filepath.Clean(path)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in root %q: %w", path, ErrPathTraversal)
	}
	return cleaned, nil
}
