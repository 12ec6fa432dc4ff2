package xengine

import "errors"

// 配置校验错误（构造期快速失败）
var (
	// ErrBlankName 日志器名称为空白
	ErrBlankName = errors.New("xengine: logger name is blank")

	// ErrInvalidCapacity 队列容量无效（必须 > 0）
	ErrInvalidCapacity = errors.New("xengine: invalid queue capacity")

	// ErrInvalidOverflow 溢出策略无效
	ErrInvalidOverflow = errors.New("xengine: invalid overflow policy")

	// ErrInvalidMaxFileSize 单文件大小上限无效（必须在 0~10240 MB 范围内）
	ErrInvalidMaxFileSize = errors.New("xengine: invalid max file size")

	// ErrInvalidOpenRetry 打开重试次数无效（必须 >= 1）
	ErrInvalidOpenRetry = errors.New("xengine: invalid open retry attempts")
)

// 运行期错误
var (
	// ErrUnknownSeverity 未注册的严重级别
	ErrUnknownSeverity = errors.New("xengine: unknown severity")

	// ErrDuplicateSeverity 严重级别已注册
	ErrDuplicateSeverity = errors.New("xengine: severity already registered")

	// ErrUnknownColor 颜色代码不在 xansi 代码表中
	ErrUnknownColor = errors.New("xengine: unknown color code")

	// ErrEmptyMessage 消息内容为空
	ErrEmptyMessage = errors.New("xengine: empty message")

	// ErrSinkOpenFailed sink 打开失败（重试耗尽）
	ErrSinkOpenFailed = errors.New("xengine: failed to open sink")
)
