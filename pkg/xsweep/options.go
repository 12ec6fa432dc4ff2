package xsweep

import (
	"io"
	"os"
	"time"

	"github.com/omeyang/logkit/pkg/xfs"
)

// 默认配置值
const (
	// DefaultRetention 默认保留时长（30 天）
	DefaultRetention = 30 * 24 * time.Hour

	// DefaultInterval 默认清扫间隔
	DefaultInterval = time.Hour

	// DefaultLayout 默认日期目录布局
	DefaultLayout = "2006-01-02"
)

type sweeperOptions struct {
	retention time.Duration
	interval  time.Duration
	layout    string
	fs        xfs.FS
	clock     xfs.Clock
	diag      io.Writer
}

func defaultOptions() *sweeperOptions {
	return &sweeperOptions{
		retention: DefaultRetention,
		interval:  DefaultInterval,
		layout:    DefaultLayout,
		fs:        xfs.OS(),
		clock:     xfs.System(),
		diag:      os.Stderr,
	}
}

// Option 清理器配置选项函数
type Option func(*sweeperOptions)

// WithRetention 设置保留时长。
// 目录日期严格早于 now-retention 时被删除。
func WithRetention(d time.Duration) Option {
	return func(o *sweeperOptions) {
		o.retention = d
	}
}

// WithInterval 设置清扫间隔。
func WithInterval(d time.Duration) Option {
	return func(o *sweeperOptions) {
		o.interval = d
	}
}

// WithLayout 设置日期目录布局（time.Parse 布局字符串）。
func WithLayout(layout string) Option {
	return func(o *sweeperOptions) {
		o.layout = layout
	}
}

// WithFS 设置文件系统实现，默认为 [xfs.OS]。
func WithFS(fs xfs.FS) Option {
	return func(o *sweeperOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithClock 设置时钟实现，默认为 [xfs.System]。
func WithClock(clock xfs.Clock) Option {
	return func(o *sweeperOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDiagnostics 设置诊断输出流，默认为 os.Stderr。
//
// 删除失败等内部错误写入此流。
//
// 设计决策: 不接受日志库接口而使用裸 io.Writer，
// 避免清理器反向依赖日志引擎造成递归写入。
func WithDiagnostics(w io.Writer) Option {
	return func(o *sweeperOptions) {
		if w != nil {
			o.diag = w
		}
	}
}
