// Package xansi 提供日志着色标记与 ANSI 控制序列之间的转换。
//
// # 标记语法
//
// 着色标记由标记符 '&' 加一个代码字母组成，例如 "&r" 表示红色前景色。
// 反斜杠转义的标记（"\&"）翻译为字面的 '&' 字符。
// 未识别的代码原样保留，因此 [ToDisplay] 和 [ToPlain]
// 对任意输入都是全函数（不含标记时为恒等变换）。
//
// # 代码表
//
// 小写字母为标准前景色，大写字母为亮色变体：
//
//	k/K 黑/灰    r/R 红    g/G 绿    y/Y 黄
//	b/B 蓝       m/M 品红  c/C 青    w/W 白
//
// 样式代码：'*' 加粗，'_' 下划线，'x' 重置。
//
// # 用法
//
//	console := xansi.ToDisplay("&rERROR&x disk full") // 带 ANSI 序列
//	file := xansi.ToPlain(console)                    // "ERROR disk full"
package xansi
