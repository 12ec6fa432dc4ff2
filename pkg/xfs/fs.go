package xfs

import (
	"io"
	"os"
)

// DefaultDirPerm 默认目录权限
//
// 0750：所有者读写执行，组读执行，其他无权限。符合 gosec G301 安全建议。
const DefaultDirPerm os.FileMode = 0750

// DefaultFilePerm 默认日志文件权限
//
// 0640：所有者读写，组只读，其他无权限。
const DefaultFilePerm os.FileMode = 0640

// FS 日志引擎使用的文件系统接口。
//
// 覆盖引擎与清理器需要的全部操作：存在性检查、目录创建、目录列举、
// 递归删除、追加写打开。所有实现都必须允许并发调用。
type FS interface {
	// Exists 检查路径是否存在
	Exists(path string) bool

	// MkdirAll 递归创建目录（目录已存在时不报错）
	MkdirAll(path string, perm os.FileMode) error

	// ReadDir 列举目录的一级条目
	ReadDir(path string) ([]os.DirEntry, error)

	// RemoveAll 递归删除路径（路径不存在时不报错）
	RemoveAll(path string) error

	// OpenAppend 以追加写模式打开文件（不存在时创建）
	OpenAppend(path string, perm os.FileMode) (io.WriteCloser, error)
}

// osFS 基于 os 标准库的 FS 实现。
type osFS struct{}

// OS 返回操作系统文件系统实现。
//
// 返回值是无状态单例，可在多个引擎实例间共享。
func OS() FS {
	return osFS{}
}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

func (osFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (osFS) OpenAppend(path string, perm os.FileMode) (io.WriteCloser, error) {
	//#nosec G304 -- 路径由引擎配置的命名函数构造，非用户直接输入
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
}
