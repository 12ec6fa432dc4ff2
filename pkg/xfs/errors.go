package xfs

import "errors"

// 路径校验错误
var (
	// ErrEmptyPath 路径为空
	ErrEmptyPath = errors.New("xfs: empty path")

	// ErrNullByte 路径包含空字节
	ErrNullByte = errors.New("xfs: path contains null byte")

	// ErrPathTraversal 路径包含 ".." 穿越段
	ErrPathTraversal = errors.New("xfs: path traversal")

	// ErrInvalidPath 路径格式无效
	ErrInvalidPath = errors.New("xfs: invalid path")
)
