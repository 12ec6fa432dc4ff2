package xsweep

import "errors"

// 配置校验与状态机错误
var (
	// ErrInvalidRetention 保留时长必须为正数
	ErrInvalidRetention = errors.New("xsweep: retention must be positive")

	// ErrInvalidInterval 清扫间隔必须为正数
	ErrInvalidInterval = errors.New("xsweep: interval must be positive")

	// ErrEmptyLayout 日期布局不能为空
	ErrEmptyLayout = errors.New("xsweep: period layout is required")

	// ErrNotStopped 清理器不在 STOPPED 状态，无法启动
	ErrNotStopped = errors.New("xsweep: sweeper is not stopped")

	// ErrListFailed 列举日志根目录失败
	ErrListFailed = errors.New("xsweep: failed to list log root")
)
