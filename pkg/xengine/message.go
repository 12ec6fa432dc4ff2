package xengine

import "time"

// Message 一条待写入的日志消息。
//
// 在调用点创建后不可变，由消费者恰好消费一次。
// lines 为有序内容行，一条消息可以跨多行。
type Message struct {
	strategy  *Strategy
	lines     []string
	echo      bool
	createdAt time.Time
}

// Severity 返回消息所属的严重级别名称。
func (m *Message) Severity() string {
	return m.strategy.name
}

// Lines 返回消息内容行的副本。
func (m *Message) Lines() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// CreatedAt 返回消息创建时间。
func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}
