// Package xfs 提供日志引擎的文件系统与时钟协作者接口。
//
// # 设计目标
//
// 引擎核心（xengine）与清理器（xsweep）不直接调用 os 包，
// 而是通过 [FS] 和 [Clock] 接口访问文件系统和当前时间，
// 便于测试中注入故障文件系统和固定时钟。
//
// # 接口
//
//   - [FS]: 目录创建、目录列举、递归删除、追加写打开、存在性检查
//   - [Clock]: 当前时间（[System] 为系统时钟，[FuncClock] 便于测试注入）
//
// # 路径校验
//
// [SanitizeRoot] 对日志根目录做格式净化（空路径、空字节、相对路径穿越）。
// 仅做格式校验，不做目录隔离；对抗性场景应结合操作系统权限控制。
package xfs
