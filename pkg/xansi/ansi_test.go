package xansi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "单个颜色代码",
			input: "&rERROR",
			want:  "\x1b[31mERROR",
		},
		{
			name:  "着色加重置",
			input: "&gINFO&x done",
			want:  "\x1b[32mINFO\x1b[0m done",
		},
		{
			name:  "亮色变体",
			input: "&RFATAL&x",
			want:  "\x1b[91mFATAL\x1b[0m",
		},
		{
			name:  "样式代码",
			input: "&*bold&_and underline&x",
			want:  "\x1b[1mbold\x1b[4mand underline\x1b[0m",
		},
		{
			name:  "转义标记翻译为字面字符",
			input: `tom \& jerry`,
			want:  "tom & jerry",
		},
		{
			name:  "未知代码原样保留",
			input: "&zkeep",
			want:  "&zkeep",
		},
		{
			name:  "行尾孤立标记原样保留",
			input: "dangling &",
			want:  "dangling &",
		},
		{
			name:  "无标记输入恒等",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:  "空字符串",
			input: "",
			want:  "",
		},
		{
			name:  "孤立反斜杠原样保留",
			input: `back\slash`,
			want:  `back\slash`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDisplay(tt.input))
		})
	}
}

func TestToDisplayIdempotentWithoutMarkers(t *testing.T) {
	// 不含标记符及其转义的输入恒等
	for _, s := range []string{"", "hello", "[12:00:00.000] - INFO - app - ok", "多字节文本"} {
		assert.Equal(t, s, ToDisplay(s))
	}
}

func TestToPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "剥除单个序列",
			input: "\x1b[31mERROR\x1b[0m",
			want:  "ERROR",
		},
		{
			name:  "剥除混合文本中的序列",
			input: "a\x1b[1mb\x1b[92mc\x1b[0md",
			want:  "abcd",
		},
		{
			name:  "无序列恒等",
			input: "no sequences here",
			want:  "no sequences here",
		},
		{
			name:  "非 SGR 的 ESC 保留",
			input: "bare \x1b escape",
			want:  "bare \x1b escape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPlain(tt.input))
		})
	}
}

func TestToPlainAfterToDisplay(t *testing.T) {
	// 仅含已识别标记的输入，先翻译再剥除等于纯文本
	tests := []struct {
		input string
		want  string
	}{
		{"&rERROR&x - disk full", "ERROR - disk full"},
		{"&gINFO&x &*started&x", "INFO started"},
		{`escaped \& marker`, "escaped & marker"},
		{"no markers at all", "no markers at all"},
	}

	for _, tt := range tests {
		got := ToPlain(ToDisplay(tt.input))
		assert.Equal(t, tt.want, got, "input: %q", tt.input)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "&rERROR&x", Wrap('r', "ERROR"))
	assert.Equal(t, "\x1b[31mERROR\x1b[0m", ToDisplay(Wrap('r', "ERROR")))
	assert.Equal(t, "ERROR", ToPlain(ToDisplay(Wrap('r', "ERROR"))))

	// 未识别代码不添加标记
	assert.Equal(t, "ERROR", Wrap('?', "ERROR"))
}

func TestKnown(t *testing.T) {
	for _, c := range []byte("krgybmcwKRGYBMCW*_x") {
		assert.True(t, Known(c), "code %c", c)
	}
	assert.False(t, Known('z'))
	assert.False(t, Known('&'))
}

func BenchmarkToDisplay(b *testing.B) {
	input := "&g[12:00:00.000]&x - &rERROR&x - app - something went wrong"
	b.ReportAllocs()
	for b.Loop() {
		_ = ToDisplay(input)
	}
}

func BenchmarkToPlainFastPath(b *testing.B) {
	input := strings.Repeat("plain text without sequences ", 4)
	b.ReportAllocs()
	for b.Loop() {
		_ = ToPlain(input)
	}
}
