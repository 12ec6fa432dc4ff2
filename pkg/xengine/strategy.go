package xengine

import (
	"fmt"

	"github.com/omeyang/logkit/pkg/xansi"
)

// 内置严重级别名称。
const (
	SeverityDebug = "DEBUG"
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityError = "ERROR"
	SeverityFatal = "FATAL"
)

// Strategy 一个严重级别的写入策略。
//
// 持有该级别当前写入的周期键与 sink 引用；这些可变字段只在引擎锁下访问。
// 每个级别一个实例，由引擎在构造期创建，[Engine.Register] 可注册扩展级别。
type Strategy struct {
	name  string
	color byte

	// 以下字段由 SinkCache.mu 保护
	periodKey string
	path      string
	sink      *sink
}

// Name 返回级别名称。
func (s *Strategy) Name() string {
	return s.name
}

// Color 返回级别的 xansi 颜色代码。
func (s *Strategy) Color() byte {
	return s.color
}

// write 格式化并写出一条消息。调用方必须持有引擎锁（SinkCache.mu）。
//
// 步骤：按消息时间计算周期键；周期变化时轮转 sink（释放旧路径、
// 确保新目录、从缓存取或打开新句柄）；格式化出标记文本；
// 需要回显时把控制台变体写到控制台；把纯文本变体加换行追加到
// sink 并刷新。
func (s *Strategy) write(e *Engine, msg *Message) error {
	key := msg.createdAt.Format(e.opts.periodLayout)
	if s.sink == nil || key != s.periodKey {
		if err := s.rotate(e, key); err != nil {
			return err
		}
	}

	marked := e.opts.format(
		msg.createdAt.Format(e.opts.timeLayout),
		xansi.Wrap(s.color, s.name),
		e.name,
		msg.lines,
	)
	display := xansi.ToDisplay(marked)

	if msg.echo {
		// 控制台回显失败不影响文件落盘
		if _, err := fmt.Fprintln(e.opts.console, display); err != nil {
			fmt.Fprintf(e.opts.diag, "xengine: console echo failed: %v\n", err)
		}
	}

	plain := xansi.ToPlain(display)
	if _, err := s.sink.buf.WriteString(plain); err != nil {
		return err
	}
	if err := s.sink.buf.WriteByte('\n'); err != nil {
		return err
	}
	return s.sink.buf.Flush()
}

// rotate 把策略切换到 key 对应周期的 sink。调用方必须持有引擎锁。
func (s *Strategy) rotate(e *Engine, key string) error {
	if s.sink != nil {
		if err := e.cache.releaseLocked(s.path); err != nil {
			// 旧句柄关闭失败不阻止切换到新文件
			fmt.Fprintf(e.opts.diag, "xengine: failed to close sink %s: %v\n", s.path, err)
		}
		s.sink = nil
	}

	dir := e.opts.dirFunc(e.root, key)
	path := e.opts.fileFunc(dir, s.name)

	snk, err := e.cache.acquireLocked(path, e.openBackend)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkOpenFailed, path, err)
	}

	s.sink = snk
	s.path = path
	s.periodKey = key
	return nil
}

// detach 清除策略的 sink 引用与周期状态。调用方必须持有引擎锁。
// 关闭协议中 sink 本身由 closeAllLocked 统一关闭。
func (s *Strategy) detach() {
	s.sink = nil
	s.path = ""
	s.periodKey = ""
}
