package xengine

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// sinkBufSize sink 缓冲区大小。
const sinkBufSize = 32 * 1024

// sink 一个打开的缓冲追加写句柄。
//
// refs 记录引用该路径的策略数量：多个级别的文件命名可能解析到同一路径，
// 此时它们共享同一个 sink。只有最后一个策略轮转离开时才真正关闭，
// 保证"每路径至多一个打开的写入器"的不变量在共享场景下依然成立。
type sink struct {
	backend io.WriteCloser
	buf     *bufio.Writer
	refs    int
}

// flushClose 刷新缓冲并关闭底层句柄。
func (s *sink) flushClose() error {
	flushErr := s.buf.Flush()
	closeErr := s.backend.Close()
	return errors.Join(flushErr, closeErr)
}

// SinkCache 路径到打开写句柄的共享缓存。
//
// mu 同时是引擎锁：策略写入、轮转、关闭都在持有 mu 的情况下进行，
// 因此跨级别对同一文件的写入被串行化。通过 [WithSinkCache] 在多个
// 引擎实例间共享缓存时，这些实例也共享同一把锁。
type SinkCache struct {
	mu    sync.Mutex
	sinks map[string]*sink
}

// NewSinkCache 创建空的 sink 缓存。
func NewSinkCache() *SinkCache {
	return &SinkCache{
		sinks: make(map[string]*sink),
	}
}

// Len 返回当前打开的 sink 数量。
func (c *SinkCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sinks)
}

// acquireLocked 获取路径对应的 sink，不存在时通过 open 惰性创建。
// 调用方必须持有 c.mu。
func (c *SinkCache) acquireLocked(path string, open func(string) (io.WriteCloser, error)) (*sink, error) {
	if s, ok := c.sinks[path]; ok {
		s.refs++
		return s, nil
	}

	backend, err := open(path)
	if err != nil {
		return nil, err
	}
	s := &sink{
		backend: backend,
		buf:     bufio.NewWriterSize(backend, sinkBufSize),
		refs:    1,
	}
	c.sinks[path] = s
	return s, nil
}

// releaseLocked 释放路径的一个引用，引用归零时刷新、关闭并移除。
// 调用方必须持有 c.mu。
func (c *SinkCache) releaseLocked(path string) error {
	s, ok := c.sinks[path]
	if !ok {
		return nil
	}
	s.refs--
	if s.refs > 0 {
		return nil
	}
	delete(c.sinks, path)
	return s.flushClose()
}

// flushAllLocked 刷新所有打开的 sink。调用方必须持有 c.mu。
func (c *SinkCache) flushAllLocked() error {
	var errs []error
	for _, s := range c.sinks {
		if err := s.buf.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// closeAllLocked 刷新并关闭所有 sink，清空缓存。调用方必须持有 c.mu。
func (c *SinkCache) closeAllLocked() error {
	var errs []error
	for path, s := range c.sinks {
		if err := s.flushClose(); err != nil {
			errs = append(errs, err)
		}
		delete(c.sinks, path)
	}
	return errors.Join(errs...)
}
