// logctl 是 logkit 日志目录的运维命令行工具。
//
// 用法:
//
//	logctl <命令> [命令参数]
//
// 命令:
//
//	sweep    按保留时长清理过期的周期日志目录
//	strip    剥除日志文本中的着色标记与 ANSI 控制序列
//	help     显示帮助信息
//
// sweep 命令说明:
//
//	清理参数可以来自命令行 flag，也可以通过 --config 从引擎配置文件
//	（YAML/JSON）读取；两者同时给出时 flag 优先。
//	--dry-run 只列出将被删除的目录，不执行删除。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	logctl sweep --root /var/log/app --retention 720h          # 清理 30 天前的目录
//	logctl sweep --root /var/log/app --dry-run                 # 只列出候选目录
//	logctl sweep --config /etc/app/engine.yaml                 # 参数取自引擎配置
//	logctl strip captured.log                                  # 剥除文件中的着色
//	kubectl logs pod | logctl strip                            # 剥除管道输入中的着色
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "logctl",
		Usage:   "logkit 日志目录运维工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Commands: []*cli.Command{
			createSweepCommand(),
			createStripCommand(),
		},
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run(args []string) int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if _, ok := err.(cli.ExitCoder); ok {
			// ExitErrHandler 已输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// setupSignalHandler 设置信号处理。
// 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
