// Package xconfig 提供日志引擎的文件配置加载。
//
// 支持 YAML 和 JSON 两种格式（按扩展名自动检测），底层使用 koanf。
// [LoadBytes] 接受字节数据并显式指定格式，适用于 K8s ConfigMap 等场景。
//
// 配置文件只覆盖可序列化的标量配置（名称、根目录、布局、队列容量、
// 溢出策略、轮转策略）；目录命名、文件命名、消息格式化等函数型配置
// 仍通过 xengine 的选项在代码中注入。
//
// # 配置示例（YAML）
//
//	name: payment
//	root: /var/log/payment
//	time_layout: "15:04:05.000"
//	period_layout: "2006-01-02"
//	queue_capacity: 8192
//	overflow: block
//	max_file_size_mb: 0
//	rotation:
//	  enabled: true
//	  retention: 720h
//	  interval: 1h
//
// # 热重载
//
// [Watch] 基于 fsnotify 监视配置文件变更并自动重载，带防抖。
// 引擎配置构造后不可变，重载结果通过回调交给调用方决策
// （通常用于在新配置下重建引擎）。
package xconfig
