package xsweep

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/logkit/pkg/xfs"
)

// State 清理器状态。
type State int32

// 状态机取值。
const (
	// StateStopped 已停止（初始状态）
	StateStopped State = iota

	// StateRunning 运行中，按间隔触发清扫
	StateRunning

	// StateStopping 停止中，等待在途清扫完成
	StateStopping
)

// String 实现 fmt.Stringer。
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Sweeper 按日期目录的保留清理器。
//
// Start、Stop、RunOnce 可从多个 goroutine 并发调用。
type Sweeper struct {
	root string
	opts *sweeperOptions

	mu    sync.Mutex // 保护 cron 的创建与销毁
	cron  *cron.Cron
	state atomic.Int32

	sweeps  atomic.Int64
	removed atomic.Int64
}

// New 创建清理器。
//
// root 为日志根目录（其下的一级日期目录是清理对象）。
// 校验失败快速返回错误：保留时长与间隔必须为正数，布局不能为空。
func New(root string, opts ...Option) (*Sweeper, error) {
	cleanRoot, err := xfs.SanitizeRoot(root)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	if options.retention <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRetention, options.retention)
	}
	if options.interval <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidInterval, options.interval)
	}
	if options.layout == "" {
		return nil, ErrEmptyLayout
	}

	return &Sweeper{
		root: cleanRoot,
		opts: options,
	}, nil
}

// State 返回当前状态。
func (s *Sweeper) State() State {
	return State(s.state.Load())
}

// Sweeps 返回已完成的清扫次数。
func (s *Sweeper) Sweeps() int64 {
	return s.sweeps.Load()
}

// Removed 返回已删除的目录总数。
func (s *Sweeper) Removed() int64 {
	return s.removed.Load()
}

// Start 启动周期清扫。
//
// 仅允许从 STOPPED 状态启动，否则返回 [ErrNotStopped]。
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return fmt.Errorf("%w: state=%s", ErrNotStopped, s.State())
	}

	// SkipIfStillRunning：清扫耗时超过间隔时跳过本次触发而不是并发重入
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(cron.Every(s.opts.interval), cron.FuncJob(func() {
		// 停止请求在清扫之间检查，进行中的清扫由 Stop 等待完成
		if s.State() != StateRunning {
			return
		}
		if _, err := s.RunOnce(context.Background()); err != nil {
			fmt.Fprintf(s.opts.diag, "xsweep: sweep failed: %v\n", err)
		}
	}))
	c.Start()
	s.cron = c

	return nil
}

// Stop 停止周期清扫并等待在途清扫完成。
//
// 非 RUNNING 状态下调用是空操作。并发的第二个 Stop 会等待第一个完成后返回。
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		return
	}

	// cron.Stop 返回的 context 在所有在途任务结束后关闭
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil

	s.state.Store(int32(StateStopped))
}

// RunOnce 执行一次清扫，返回被删除的目录路径。
//
// 根目录不存在时视为无事可做，返回 nil。删除按目录逐个进行，
// 目录之间检查 ctx 取消；单个目录的删除不会被中断。
// 单个目录删除失败写入诊断流并继续处理后续目录。
func (s *Sweeper) RunOnce(ctx context.Context) ([]string, error) {
	candidates, err := s.collect()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range candidates {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := s.opts.fs.RemoveAll(dir); err != nil {
			fmt.Fprintf(s.opts.diag, "xsweep: failed to remove %s: %v\n", dir, err)
			continue
		}
		removed = append(removed, dir)
	}

	s.sweeps.Add(1)
	s.removed.Add(int64(len(removed)))
	return removed, nil
}

// Candidates 返回本次清扫将要删除的目录路径，不执行删除。
//
// 供运维工具的 dry-run 模式使用。
func (s *Sweeper) Candidates() ([]string, error) {
	return s.collect()
}

// collect 列举根目录并筛选出早于保留阈值的日期目录。
func (s *Sweeper) collect() ([]string, error) {
	if !s.opts.fs.Exists(s.root) {
		return nil, nil
	}

	entries, err := s.opts.fs.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}

	threshold := s.opts.clock.Now().Add(-s.opts.retention)

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// 解析失败的目录名不是清理候选（预期存在无关目录），静默跳过
		ts, err := time.Parse(s.opts.layout, entry.Name())
		if err != nil {
			continue
		}
		// 严格早于阈值才删除；当天目录天然被排除
		if ts.Before(threshold) {
			candidates = append(candidates, filepath.Join(s.root, entry.Name()))
		}
	}
	return candidates, nil
}
