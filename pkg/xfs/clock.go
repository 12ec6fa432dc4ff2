package xfs

import "time"

// Clock 时钟接口。
//
// 引擎用它获取消息时间戳，清理器用它计算保留阈值。
// 测试中可注入 [FuncClock] 实现固定或可推进的时间。
type Clock interface {
	// Now 返回当前时间
	Now() time.Time
}

// systemClock 系统时钟实现。
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System 返回系统时钟。
func System() Clock {
	return systemClock{}
}

// FuncClock 函数适配器，将函数转换为 [Clock] 接口。
//
// 用法：
//
//	fixed := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
//	clock := xfs.FuncClock(func() time.Time { return fixed })
type FuncClock func() time.Time

// Now 实现 [Clock] 接口。
func (f FuncClock) Now() time.Time {
	return f()
}
