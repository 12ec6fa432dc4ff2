package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/logkit/pkg/xansi"
	"github.com/omeyang/logkit/pkg/xconfig"
	"github.com/omeyang/logkit/pkg/xsweep"
)

// usageError 表示参数错误，run() 将其映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// stdout 返回命令输出流，未设置时回退到 os.Stdout。
// 测试中通过根命令的 Writer 字段注入缓冲。
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// stdin 返回命令输入流，未设置时回退到 os.Stdin。
func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// createSweepCommand 创建 sweep 子命令（一次性保留清理）。
func createSweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "按保留时长清理过期的周期日志目录",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "日志根目录",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "引擎配置文件路径（YAML/JSON），flag 优先于文件值",
			},
			&cli.DurationFlag{
				Name:  "retention",
				Usage: "保留时长，目录日期严格早于 now-retention 时被删除",
				Value: xsweep.DefaultRetention,
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "周期目录的日期布局",
				Value: xsweep.DefaultLayout,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "只列出将被删除的目录，不执行删除",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			params, err := resolveSweepParams(cmd)
			if err != nil {
				return err
			}
			return cmdSweep(ctx, cmd, params, cmd.Bool("dry-run"))
		},
	}
}

// sweepParams sweep 命令解析后的参数。
type sweepParams struct {
	root      string
	retention time.Duration
	layout    string
}

// resolveSweepParams 合并配置文件与命令行 flag，flag 优先。
func resolveSweepParams(cmd *cli.Command) (*sweepParams, error) {
	params := &sweepParams{
		root:      cmd.String("root"),
		retention: cmd.Duration("retention"),
		layout:    cmd.String("layout"),
	}

	if path := cmd.String("config"); path != "" {
		cfg, err := xconfig.Load(path)
		if err != nil {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		if params.root == "" {
			params.root = cfg.Root
		}
		if !cmd.IsSet("retention") && cfg.Rotation.Retention > 0 {
			params.retention = cfg.Rotation.Retention
		}
		if !cmd.IsSet("layout") && cfg.PeriodLayout != "" {
			params.layout = cfg.PeriodLayout
		}
	}

	if params.root == "" {
		return nil, &usageError{msg: "需要通过 --root 或 --config 指定日志根目录"}
	}
	return params, nil
}

// cmdSweep 执行一次清理（或 dry-run 列举）。
func cmdSweep(ctx context.Context, cmd *cli.Command, params *sweepParams, dryRun bool) error {
	sweeper, err := xsweep.New(params.root,
		xsweep.WithRetention(params.retention),
		xsweep.WithLayout(params.layout),
	)
	if err != nil {
		return err
	}

	out := stdout(cmd)

	if dryRun {
		candidates, err := sweeper.Candidates()
		if err != nil {
			return err
		}
		for _, dir := range candidates {
			fmt.Fprintln(out, dir)
		}
		fmt.Fprintf(out, "将删除 %d 个目录（dry-run，未执行）\n", len(candidates))
		return nil
	}

	removed, err := sweeper.RunOnce(ctx)
	for _, dir := range removed {
		fmt.Fprintln(out, dir)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "已删除 %d 个目录\n", len(removed))
	return nil
}

// createStripCommand 创建 strip 子命令。
func createStripCommand() *cli.Command {
	return &cli.Command{
		Name:      "strip",
		Usage:     "剥除日志文本中的着色标记与 ANSI 控制序列",
		ArgsUsage: "[file]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) > 1 {
				return &usageError{msg: "strip 至多接受一个文件参数"}
			}

			in := stdin(cmd)
			if len(args) == 1 {
				f, err := os.Open(args[0]) //#nosec G304 -- 文件路径由操作者提供
				if err != nil {
					return err
				}
				defer f.Close() //nolint:errcheck // 只读文件关闭失败无影响
				in = f
			}
			return cmdStrip(in, stdout(cmd))
		},
	}
}

// cmdStrip 逐行翻译着色标记后剥除全部 ANSI 序列。
//
// 先经 ToDisplay 把标记解析为控制序列，再 ToPlain 剥除，
// 这样标记文本与已着色文本都能得到纯文本输出。
func cmdStrip(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		plain := xansi.ToPlain(xansi.ToDisplay(scanner.Text()))
		if _, err := fmt.Fprintln(out, plain); err != nil {
			return err
		}
	}
	return scanner.Err()
}
