package xengine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/logkit/pkg/xansi"
	"github.com/omeyang/logkit/pkg/xfs"
	"github.com/omeyang/logkit/pkg/xsweep"
)

// openRetryDelay sink 打开重试的固定间隔。
const openRetryDelay = 20 * time.Millisecond

// exitFunc 进程终止函数，测试中可替换。
var exitFunc = os.Exit

// defaultStrategies 内置级别及其颜色代码。
var defaultStrategies = []struct {
	name  string
	color byte
}{
	{SeverityDebug, 'c'},
	{SeverityInfo, 'g'},
	{SeverityWarn, 'y'},
	{SeverityError, 'r'},
	{SeverityFatal, 'R'},
}

// Engine 异步日志引擎。
//
// 由 [New] 构造，构造后配置不可变；进程内可以共存多个互不共享
// 可变状态的实例（除非通过 [WithSinkCache] 显式共享 sink 缓存）。
// 生命周期以 [Engine.Shutdown] 显式结束，没有隐式终结。
type Engine struct {
	name string
	id   string
	root string
	opts *engineOptions

	cache     *SinkCache
	ownsCache bool
	sweeper   *xsweep.Sweeper

	stratMu    sync.RWMutex
	strategies map[string]*Strategy

	queue        chan *Message
	consumerDone chan struct{}
	group        *errgroup.Group

	shuttingDown atomic.Bool // Submit 据此转同步路径
	shutdownOnce atomic.Bool // Shutdown 幂等标记
	closed       atomic.Bool // sink 已统一关闭

	submitted   atomic.Int64
	written     atomic.Int64
	dropped     atomic.Int64
	syncWrites  atomic.Int64
	writeErrors atomic.Int64
}

// New 创建并启动日志引擎。
//
// 校验失败（空白名称、非正容量、无效溢出策略、无效文件大小上限、
// 启用轮转但保留时长或间隔非正）立即返回错误，这是构造期唯一的
// 硬失败路径。成功返回时消费者已在后台运行，启用轮转时清理器已启动。
func New(name string, opts ...Option) (*Engine, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}

	options := defaultEngineOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	root, err := xfs.SanitizeRoot(options.root)
	if err != nil {
		return nil, err
	}

	cache := options.cache
	ownsCache := cache == nil
	if ownsCache {
		cache = NewSinkCache()
	}

	e := &Engine{
		name:         name,
		id:           uuid.NewString(),
		root:         root,
		opts:         options,
		cache:        cache,
		ownsCache:    ownsCache,
		strategies:   make(map[string]*Strategy, len(defaultStrategies)),
		queue:        make(chan *Message, options.queueCapacity),
		consumerDone: make(chan struct{}),
		group:        new(errgroup.Group),
	}
	for _, d := range defaultStrategies {
		e.strategies[d.name] = &Strategy{name: d.name, color: d.color}
	}

	if options.rotation.Enabled {
		sweeper, err := xsweep.New(root,
			xsweep.WithRetention(options.rotation.Retention),
			xsweep.WithInterval(options.rotation.Interval),
			xsweep.WithLayout(options.periodLayout),
			xsweep.WithFS(options.fs),
			xsweep.WithClock(options.clock),
			xsweep.WithDiagnostics(options.diag),
		)
		if err != nil {
			return nil, err
		}
		if err := sweeper.Start(); err != nil {
			return nil, err
		}
		e.sweeper = sweeper
	}

	e.group.Go(e.run)
	return e, nil
}

// Name 返回日志器名称。
func (e *Engine) Name() string {
	return e.name
}

// ID 返回引擎实例标识（UUID），用于诊断与统计归属。
func (e *Engine) ID() string {
	return e.id
}

// Root 返回规范化后的日志根目录。
func (e *Engine) Root() string {
	return e.root
}

// Submit 异步提交一条消息。
//
// 引擎运行中时入队后立即返回（队列满时按 [Overflow] 策略阻塞或丢弃）；
// 关闭进行中或队列已关闭时转为在调用方同步写出。
// 返回错误仅来自参数校验：未注册的级别或空内容。
func (e *Engine) Submit(severity string, echo bool, lines ...string) error {
	msg, err := e.newMessage(severity, echo, lines)
	if err != nil {
		return err
	}
	e.submitted.Add(1)

	if e.shuttingDown.Load() {
		e.writeSync(msg)
		return nil
	}
	if !e.enqueue(msg) {
		// 入队与关闭竞争时队列可能刚被关闭，降级为同步写
		e.writeSync(msg)
	}
	return nil
}

// SubmitSync 同步提交一条消息，写出完成后返回。
func (e *Engine) SubmitSync(severity string, echo bool, lines ...string) error {
	msg, err := e.newMessage(severity, echo, lines)
	if err != nil {
		return err
	}
	e.submitted.Add(1)
	e.writeSync(msg)
	return nil
}

// Register 注册一个扩展严重级别。
//
// 名称不能为空白且未被占用，颜色必须在 xansi 代码表中。
func (e *Engine) Register(name string, color byte) (*Strategy, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	if !xansi.Known(color) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}

	e.stratMu.Lock()
	defer e.stratMu.Unlock()

	if _, ok := e.strategies[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSeverity, name)
	}
	s := &Strategy{name: name, color: color}
	e.strategies[name] = s
	return s, nil
}

// Flush 刷新所有打开 sink 的缓冲。
func (e *Engine) Flush() error {
	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()
	return e.cache.flushAllLocked()
}

// Shutdown 优雅关闭引擎。
//
// 幂等：关闭进行中或已完成时的再次调用立即返回 nil。
// timeout 限定等待消费者排空的时长，是软截止而非硬中断：超时后剩余
// 消息在调用方尽力排空并写出，同时向控制台输出告警——消息不会丢失，
// 只可能相对理想顺序发生重排。随后停止清理器（等待在途清扫）、
// 刷新并关闭全部 sink。
func (e *Engine) Shutdown(timeout time.Duration) error {
	if e.shutdownOnce.Swap(true) {
		return nil
	}

	e.shuttingDown.Store(true)
	close(e.queue)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-e.consumerDone:
	case <-timer.C:
		fmt.Fprintln(e.opts.console, "logkit: shutdown wait timed out, some logs may be lost")
		e.drainRemainder()
		// 队列已关闭且排空，消费者至多还有一条在途消息，等它写完
		<-e.consumerDone
	}

	if e.sweeper != nil {
		e.sweeper.Stop()
	}

	err := e.closeSinks()
	if gerr := e.group.Wait(); gerr != nil {
		err = errors.Join(err, gerr)
	}
	return err
}

// Exit 关闭引擎后终止进程。
func (e *Engine) Exit(status int, timeout time.Duration) {
	if err := e.Shutdown(timeout); err != nil {
		fmt.Fprintf(e.opts.diag, "xengine: shutdown before exit: %v\n", err)
	}
	exitFunc(status)
}

// newMessage 校验参数并构造不可变消息。
func (e *Engine) newMessage(severity string, echo bool, lines []string) (*Message, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyMessage
	}
	s, ok := e.strategy(severity)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSeverity, severity)
	}

	content := make([]string, len(lines))
	copy(content, lines)
	return &Message{
		strategy:  s,
		lines:     content,
		echo:      echo,
		createdAt: e.opts.clock.Now(),
	}, nil
}

// strategy 查找级别对应的策略。
func (e *Engine) strategy(name string) (*Strategy, bool) {
	e.stratMu.RLock()
	defer e.stratMu.RUnlock()
	s, ok := e.strategies[name]
	return s, ok
}

// enqueue 尝试入队，返回 false 表示队列已关闭。
//
// 与 Shutdown 的 close(queue) 存在固有竞争：shuttingDown 检查通过后
// 队列仍可能被关闭，向已关闭 channel 发送的 panic 在此处吸收，
// 调用方转同步路径，消息不会丢失。
func (e *Engine) enqueue(msg *Message) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if e.opts.overflow == OverflowDrop {
		select {
		case e.queue <- msg:
		default:
			e.dropped.Add(1)
		}
		return true
	}
	e.queue <- msg
	return true
}

// run 消费者主循环：按严格 FIFO 顺序逐条写出，直到队列关闭且排空。
func (e *Engine) run() error {
	defer close(e.consumerDone)
	for msg := range e.queue {
		e.deliver(msg)
	}
	return nil
}

// deliver 在引擎锁下写出一条消息。
//
// 写入失败上报到诊断流并继续，绝不终止消费者，也不回传给提交方。
func (e *Engine) deliver(msg *Message) {
	e.cache.mu.Lock()
	err := msg.strategy.write(e, msg)
	e.cache.mu.Unlock()

	if err != nil {
		e.writeErrors.Add(1)
		fmt.Fprintf(e.opts.diag, "xengine: write %s message failed: %v\n", msg.strategy.name, err)
		return
	}
	e.written.Add(1)
}

// writeSync 同步写出一条消息。
//
// 引擎完全关闭后仍可能被调用（关闭后的 Submit 走此路径），
// 此时写完立即归还句柄，不留下无人关闭的 sink。
func (e *Engine) writeSync(msg *Message) {
	e.syncWrites.Add(1)
	e.deliver(msg)

	if e.closed.Load() {
		if err := e.closeSinks(); err != nil {
			fmt.Fprintf(e.opts.diag, "xengine: late sink close failed: %v\n", err)
		}
	}
}

// drainRemainder 非阻塞地排空队列剩余消息（超时降级路径）。
func (e *Engine) drainRemainder() {
	for {
		select {
		case msg, ok := <-e.queue:
			if !ok {
				return
			}
			e.deliver(msg)
		default:
			return
		}
	}
}

// closeSinks 释放全部策略的 sink 引用并关闭句柄。
//
// 私有缓存整体清空；共享缓存只归还本引擎持有的引用，
// 其他引擎的 sink 不受影响。
func (e *Engine) closeSinks() error {
	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()

	var errs []error
	e.stratMu.RLock()
	for _, s := range e.strategies {
		if s.sink == nil {
			continue
		}
		if err := e.cache.releaseLocked(s.path); err != nil {
			errs = append(errs, err)
		}
		s.detach()
	}
	e.stratMu.RUnlock()

	if e.ownsCache {
		if err := e.cache.closeAllLocked(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closed.Store(true)
	return errors.Join(errs...)
}

// openBackend 为路径打开 sink 底层句柄。
//
// 先确保父目录存在；设置了大小上限时换用 lumberjack 按大小轮转，
// 否则带固定间隔重试地打开普通追加写句柄。
func (e *Engine) openBackend(path string) (io.WriteCloser, error) {
	if err := e.opts.fs.MkdirAll(filepath.Dir(path), xfs.DefaultDirPerm); err != nil {
		return nil, err
	}

	if e.opts.maxFileSizeMB > 0 {
		return &lumberjack.Logger{
			Filename: path,
			MaxSize:  e.opts.maxFileSizeMB,
			Compress: false,
		}, nil
	}

	// openRetry 已校验 >= 1，转换安全
	return retry.NewWithData[io.WriteCloser](
		retry.Attempts(uint(e.opts.openRetry)),
		retry.Delay(openRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	).Do(func() (io.WriteCloser, error) {
		return e.opts.fs.OpenAppend(path, xfs.DefaultFilePerm)
	})
}
