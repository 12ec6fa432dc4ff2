// Package xsweep 提供按日期目录的日志保留清理器。
//
// 清理器周期性扫描日志根目录下的一级目录，目录名按保留期布局
// （默认 "2006-01-02"）解析为日期，严格早于 now-retention 的目录被递归删除。
// 无法解析的目录名视为非清理候选，静默跳过——根目录下允许存在无关目录。
// 当天目录的日期不会早于阈值，因此正在写入的目录天然不会被删除。
//
// # 状态机
//
//	STOPPED -> Start() -> RUNNING -> Stop() -> STOPPING -> STOPPED
//
// Stop 是协作式取消：等待在途清扫完成后才返回，不会中断删除到一半的目录树遍历。
//
// # 调度
//
// 周期调度基于 robfig/cron/v3 的固定间隔调度器，并用 SkipIfStillRunning
// 链防止清扫耗时超过间隔时的重入。
//
// # 用法
//
//	s, err := xsweep.New("./logs",
//	    xsweep.WithRetention(30*24*time.Hour),
//	    xsweep.WithInterval(time.Hour),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := s.Start(); err != nil {
//	    return err
//	}
//	defer s.Stop()
//
// [Sweeper.RunOnce] 提供一次性清扫，供运维工具和测试使用。
package xsweep
