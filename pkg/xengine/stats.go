package xengine

// Stats 引擎运行统计的一致性快照。
//
// 各计数来自独立的原子变量，快照整体不保证瞬时一致，
// 但每个计数单调不减，适合周期采集上报。
type Stats struct {
	// EngineID 引擎实例标识
	EngineID string `json:"engine_id"`

	// Name 日志器名称
	Name string `json:"name"`

	// Submitted 已提交的消息总数（含被丢弃的）
	Submitted int64 `json:"submitted"`

	// Written 已成功写出的消息数
	Written int64 `json:"written"`

	// Dropped 因 OverflowDrop 策略被丢弃的消息数
	Dropped int64 `json:"dropped"`

	// SyncWrites 走同步路径写出的消息数（SubmitSync 与关闭期间的 Submit）
	SyncWrites int64 `json:"sync_writes"`

	// WriteErrors 写出失败的消息数
	WriteErrors int64 `json:"write_errors"`

	// QueueLength 当前队列长度
	QueueLength int `json:"queue_length"`

	// OpenSinks 当前打开的 sink 数量
	OpenSinks int `json:"open_sinks"`

	// ShuttingDown 是否已进入关闭流程
	ShuttingDown bool `json:"shutting_down"`
}

// Stats 返回当前统计快照。
func (e *Engine) Stats() Stats {
	return Stats{
		EngineID:     e.id,
		Name:         e.name,
		Submitted:    e.submitted.Load(),
		Written:      e.written.Load(),
		Dropped:      e.dropped.Load(),
		SyncWrites:   e.syncWrites.Load(),
		WriteErrors:  e.writeErrors.Load(),
		QueueLength:  len(e.queue),
		OpenSinks:    e.cache.Len(),
		ShuttingDown: e.shuttingDown.Load(),
	}
}
