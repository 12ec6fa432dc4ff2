package xansi

import (
	"regexp"
	"strings"
)

// Marker 着色标记符。
const Marker = '&'

// escape 转义前缀，"\&" 翻译为字面 '&'。
const escape = '\\'

// Reset 重置代码字母，Wrap 用它闭合着色片段。
const Reset = 'x'

// codes 代码字母到 SGR 控制序列的固定映射。
//
// 设计决策: 映射保持封闭且不可配置。调用方需要自定义颜色时
// 应直接在格式化函数里写入标记，而不是扩展代码表——
// 代码表变更会破坏 ToPlain(ToDisplay(s)) 的往返性质。
var codes = map[byte]string{
	'k': "\x1b[30m", // 黑
	'r': "\x1b[31m", // 红
	'g': "\x1b[32m", // 绿
	'y': "\x1b[33m", // 黄
	'b': "\x1b[34m", // 蓝
	'm': "\x1b[35m", // 品红
	'c': "\x1b[36m", // 青
	'w': "\x1b[37m", // 白
	'K': "\x1b[90m", // 灰（亮黑）
	'R': "\x1b[91m", // 亮红
	'G': "\x1b[92m", // 亮绿
	'Y': "\x1b[93m", // 亮黄
	'B': "\x1b[94m", // 亮蓝
	'M': "\x1b[95m", // 亮品红
	'C': "\x1b[96m", // 亮青
	'W': "\x1b[97m", // 亮白
	'*': "\x1b[1m",  // 加粗
	'_': "\x1b[4m",  // 下划线
	'x': "\x1b[0m",  // 重置
}

// sgrPattern 匹配 SGR 控制序列（ESC [ 参数字节 m）。
var sgrPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Known 报告代码字母是否在代码表中。
func Known(code byte) bool {
	_, ok := codes[code]
	return ok
}

// Wrap 用着色标记包裹文本：Wrap('r', "ERROR") 返回 "&rERROR&x"。
//
// 未识别的代码字母返回原文本，不添加标记。
func Wrap(code byte, s string) string {
	if !Known(code) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	b.WriteByte(Marker)
	b.WriteByte(code)
	b.WriteString(s)
	b.WriteByte(Marker)
	b.WriteByte(Reset)
	return b.String()
}

// ToDisplay 将着色标记翻译为 ANSI 控制序列。
//
// 规则：
//   - "&" + 已知代码字母 -> 对应的 SGR 序列
//   - "\&" -> 字面 '&'
//   - "&" + 未知代码、孤立的 '&' 或 '\' -> 原样保留
//
// 对不含标记符及其转义的输入是恒等变换。
func ToDisplay(s string) string {
	// 快速路径：无标记直接返回，避免分配
	if !strings.ContainsRune(s, Marker) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch {
		case s[i] == escape && i+1 < len(s) && s[i+1] == Marker:
			b.WriteByte(Marker)
			i += 2
		case s[i] == Marker && i+1 < len(s):
			if seq, ok := codes[s[i+1]]; ok {
				b.WriteString(seq)
			} else {
				b.WriteByte(s[i])
				b.WriteByte(s[i+1])
			}
			i += 2
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// ToPlain 剥除文本中的所有 SGR 控制序列。
//
// 对任意输入安全；不含控制序列时为恒等变换。
// 注意本函数不处理着色标记——先经 [ToDisplay] 翻译再剥除，
// 才能得到标记解析后的纯文本。
func ToPlain(s string) string {
	// 快速路径：无 ESC 字节直接返回
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	return sgrPattern.ReplaceAllString(s, "")
}
