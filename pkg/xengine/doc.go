// Package xengine 提供异步按严重级别分文件的日志引擎。
//
// 调用方通过 [Engine.Submit] 提交消息，后台单消费者 goroutine 按严格 FIFO
// 顺序取出消息，交给对应级别的策略格式化并追加写入
// <root>/<周期目录>/<级别小写>.log；消息可同时回显到控制台。
// 周期（默认按日）变化时策略自动轮转到新目录的新文件，
// 过期的周期目录由 xsweep 清理器按保留时长删除。
//
// # 并发模型
//
// 每个引擎一个消费者 goroutine；所有共享可变状态（[SinkCache] 与各策略的
// 周期/落点字段）只在单把引擎锁下访问，跨级别写入同一轮转文件因此被
// 串行化，已刷出消息的字节在文件中保证连续。队列有界，
// 满时行为由 [Overflow] 策略显式选择（阻塞或丢弃计数），不存在静默默认。
//
// # 关闭协议
//
// [Engine.Shutdown] 幂等。顺序：置关闭标记（此后 Submit 走同步路径）→
// 关闭队列 → 限时等待消费者排空 → 超时则在调用方尽力非阻塞排空并向
// 控制台输出告警 → 停止清理器并等待在途清扫 → 刷新并关闭全部 sink。
// 排空超时只是软截止：剩余消息仍会被写出，只可能相对无限等待的
// 理想顺序发生重排，不会丢失。
//
// # 基本用法
//
//	eng, err := xengine.New("payment",
//	    xengine.WithRoot("/var/log/payment"),
//	    xengine.WithRotation(30*24*time.Hour, time.Hour),
//	)
//	if err != nil {
//	    // 配置校验失败是构造期唯一的硬失败
//	}
//	defer eng.Shutdown(5 * time.Second)
//
//	eng.Submit(xengine.SeverityInfo, false, "order accepted")
//
// 写入期间的 I/O 失败只上报到诊断流，绝不回传给 Submit 的调用方，
// 也不会终止消费者。
package xengine
