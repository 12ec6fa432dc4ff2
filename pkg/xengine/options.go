package xengine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/omeyang/logkit/pkg/xconfig"
	"github.com/omeyang/logkit/pkg/xfs"
)

// 默认配置值
const (
	// DefaultRoot 默认日志根目录
	DefaultRoot = "./logs"

	// DefaultTimeLayout 默认行内时间布局（时:分:秒.毫秒）
	DefaultTimeLayout = "15:04:05.000"

	// DefaultPeriodLayout 默认周期目录布局（按日）
	DefaultPeriodLayout = "2006-01-02"

	// DefaultQueueCapacity 默认队列容量
	DefaultQueueCapacity = 8192

	// DefaultOpenRetry 默认 sink 打开尝试次数（含首次）
	DefaultOpenRetry = 3

	// maxFileSizeMB 单文件大小上限的上限（10 GB），与 lumberjack 的取值范围一致
	maxFileSizeMB = 10240
)

// Overflow 队列满时的背压策略。
//
// 队列有界，满时行为必须是显式的配置选择而非静默默认。
type Overflow int

// 溢出策略取值。
const (
	// OverflowBlock 阻塞提交方直到队列有空位（默认）
	OverflowBlock Overflow = iota

	// OverflowDrop 丢弃本条消息并累加丢弃计数
	OverflowDrop
)

// String 实现 fmt.Stringer。
func (o Overflow) String() string {
	switch o {
	case OverflowBlock:
		return "block"
	case OverflowDrop:
		return "drop"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// parseOverflow 解析配置文件中的溢出策略字符串。
func parseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(s) {
	case "block":
		return OverflowBlock, nil
	case "drop":
		return OverflowDrop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOverflow, s)
	}
}

// RotationPolicy 保留清理策略，构造后不可变。
type RotationPolicy struct {
	// Enabled 是否启用周期目录清理
	Enabled bool

	// Retention 保留时长，目录日期严格早于 now-Retention 时被删除
	Retention time.Duration

	// Interval 清扫间隔
	Interval time.Duration
}

type engineOptions struct {
	root          string
	timeLayout    string
	periodLayout  string
	queueCapacity int
	overflow      Overflow
	rotation      RotationPolicy
	maxFileSizeMB int
	openRetry     int
	dirFunc       DirFunc
	fileFunc      FileFunc
	format        FormatFunc
	fs            xfs.FS
	clock         xfs.Clock
	diag          io.Writer
	console       io.Writer
	cache         *SinkCache

	// err 记录选项转换阶段的错误（如 FromFile 的字符串解析），
	// 在 New 的统一校验中上报
	err error
}

func defaultEngineOptions() *engineOptions {
	return &engineOptions{
		root:          DefaultRoot,
		timeLayout:    DefaultTimeLayout,
		periodLayout:  DefaultPeriodLayout,
		queueCapacity: DefaultQueueCapacity,
		overflow:      OverflowBlock,
		openRetry:     DefaultOpenRetry,
		dirFunc:       DefaultDir,
		fileFunc:      DefaultFile,
		format:        DefaultFormat,
		fs:            xfs.OS(),
		clock:         xfs.System(),
		diag:          os.Stderr,
		console:       os.Stdout,
	}
}

// Option 引擎配置选项函数
type Option func(*engineOptions)

// WithRoot 设置日志根目录，默认 "./logs"。
func WithRoot(root string) Option {
	return func(o *engineOptions) {
		if root != "" {
			o.root = root
		}
	}
}

// WithTimeLayout 设置行内时间显示布局。
func WithTimeLayout(layout string) Option {
	return func(o *engineOptions) {
		if layout != "" {
			o.timeLayout = layout
		}
	}
}

// WithPeriodLayout 设置周期目录布局（time.Format 布局字符串）。
//
// 周期键既决定目录名，也决定策略何时轮转到新文件。
func WithPeriodLayout(layout string) Option {
	return func(o *engineOptions) {
		if layout != "" {
			o.periodLayout = layout
		}
	}
}

// WithQueueCapacity 设置队列容量，必须 > 0，默认 8192。
func WithQueueCapacity(n int) Option {
	return func(o *engineOptions) {
		o.queueCapacity = n
	}
}

// WithOverflow 设置队列满时的背压策略，默认 [OverflowBlock]。
func WithOverflow(policy Overflow) Option {
	return func(o *engineOptions) {
		o.overflow = policy
	}
}

// WithRotation 启用保留清理并设置保留时长与清扫间隔。
func WithRotation(retention, interval time.Duration) Option {
	return func(o *engineOptions) {
		o.rotation = RotationPolicy{
			Enabled:   true,
			Retention: retention,
			Interval:  interval,
		}
	}
}

// WithMaxFileSizeMB 设置单个日志文件的大小上限（MB）。
//
// 0 表示不限制（默认，使用普通追加写句柄）；大于 0 时 sink 底层
// 换用 lumberjack 按大小轮转，超限的旧内容转为同目录备份文件。
func WithMaxFileSizeMB(mb int) Option {
	return func(o *engineOptions) {
		o.maxFileSizeMB = mb
	}
}

// WithOpenRetry 设置 sink 打开的尝试次数（含首次），默认 3。
func WithOpenRetry(attempts int) Option {
	return func(o *engineOptions) {
		o.openRetry = attempts
	}
}

// WithDirFunc 设置目录命名函数，默认 [DefaultDir]。
func WithDirFunc(fn DirFunc) Option {
	return func(o *engineOptions) {
		if fn != nil {
			o.dirFunc = fn
		}
	}
}

// WithFileFunc 设置文件命名函数，默认 [DefaultFile]。
func WithFileFunc(fn FileFunc) Option {
	return func(o *engineOptions) {
		if fn != nil {
			o.fileFunc = fn
		}
	}
}

// WithFormat 设置消息格式化函数，默认 [DefaultFormat]。
func WithFormat(fn FormatFunc) Option {
	return func(o *engineOptions) {
		if fn != nil {
			o.format = fn
		}
	}
}

// WithFS 设置文件系统实现，默认 [xfs.OS]。
//
// 注意：设置了 WithMaxFileSizeMB 时 sink 底层由 lumberjack 直接
// 操作操作系统文件，不经过此接口；目录创建与清理仍走此接口。
func WithFS(fs xfs.FS) Option {
	return func(o *engineOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithClock 设置时钟实现，默认 [xfs.System]。
func WithClock(clock xfs.Clock) Option {
	return func(o *engineOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDiagnostics 设置诊断输出流，默认 os.Stderr。
//
// 写入失败等内部错误写入此流，绝不经由引擎自身记录，
// 避免递归写入。
func WithDiagnostics(w io.Writer) Option {
	return func(o *engineOptions) {
		if w != nil {
			o.diag = w
		}
	}
}

// WithConsole 设置控制台输出流，默认 os.Stdout。
//
// 回显消息和关闭超时告警写入此流。
func WithConsole(w io.Writer) Option {
	return func(o *engineOptions) {
		if w != nil {
			o.console = w
		}
	}
}

// WithSinkCache 在多个引擎实例间共享 sink 缓存。
//
// 共享缓存的实例也共享引擎锁，对同一路径的写入跨实例串行化。
// 不设置时每个引擎使用独立缓存，实例间互不共享可变状态。
func WithSinkCache(cache *SinkCache) Option {
	return func(o *engineOptions) {
		if cache != nil {
			o.cache = cache
		}
	}
}

// FromFile 用 xconfig 加载的文件配置覆盖对应选项。
//
// 只覆盖文件中显式设置（非零值）的字段，函数型配置不受影响。
// 通常放在选项列表首位，让代码内选项可以覆盖文件值。
func FromFile(cfg *xconfig.File) Option {
	return func(o *engineOptions) {
		if cfg == nil {
			return
		}
		if cfg.Root != "" {
			o.root = cfg.Root
		}
		if cfg.TimeLayout != "" {
			o.timeLayout = cfg.TimeLayout
		}
		if cfg.PeriodLayout != "" {
			o.periodLayout = cfg.PeriodLayout
		}
		if cfg.QueueCapacity != 0 {
			o.queueCapacity = cfg.QueueCapacity
		}
		if cfg.Overflow != "" {
			policy, err := parseOverflow(cfg.Overflow)
			if err != nil {
				o.err = err
				return
			}
			o.overflow = policy
		}
		if cfg.MaxFileSizeMB != 0 {
			o.maxFileSizeMB = cfg.MaxFileSizeMB
		}
		if cfg.Rotation.Enabled {
			o.rotation = RotationPolicy{
				Enabled:   true,
				Retention: cfg.Rotation.Retention,
				Interval:  cfg.Rotation.Interval,
			}
		}
	}
}

// validate 统一校验配置，失败即构造失败。
func (o *engineOptions) validate() error {
	if o.err != nil {
		return o.err
	}
	if o.queueCapacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, o.queueCapacity)
	}
	if o.overflow != OverflowBlock && o.overflow != OverflowDrop {
		return fmt.Errorf("%w: %d", ErrInvalidOverflow, int(o.overflow))
	}
	if o.maxFileSizeMB < 0 || o.maxFileSizeMB > maxFileSizeMB {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxFileSize, o.maxFileSizeMB, maxFileSizeMB)
	}
	if o.openRetry < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOpenRetry, o.openRetry)
	}
	// 保留时长与间隔的正数校验由 xsweep.New 执行
	return nil
}
