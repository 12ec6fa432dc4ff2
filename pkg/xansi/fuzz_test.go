package xansi

import (
	"strings"
	"testing"
)

// FuzzToDisplay 验证翻译与剥除对任意输入的全函数性质。
func FuzzToDisplay(f *testing.F) {
	f.Add("&rERROR&x plain")
	f.Add(`escaped \& marker`)
	f.Add("&")
	f.Add(`\`)
	f.Add("&z unknown")
	f.Add("\x1b[31malready ansi\x1b[0m")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		display := ToDisplay(s)
		plain := ToPlain(display)

		// 剥除后不应残留任何 SGR 序列
		if sgrPattern.MatchString(plain) {
			t.Errorf("ToPlain 残留 SGR 序列: %q", plain)
		}

		// 不含标记符及其转义时 ToDisplay 必须恒等
		if !strings.ContainsRune(s, Marker) && ToDisplay(s) != s {
			t.Errorf("无标记输入被改写: %q -> %q", s, display)
		}

		// ToPlain 幂等
		if ToPlain(plain) != plain {
			t.Errorf("ToPlain 不幂等: %q", plain)
		}
	})
}
