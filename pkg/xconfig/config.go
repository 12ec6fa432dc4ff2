package xconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式
	FormatJSON Format = "json"
)

// delim koanf 路径分隔符。
const delim = "."

// File 文件可配置的引擎参数。
//
// 零值字段表示"未设置"，由 xengine 的默认值接管；
// 校验（名称非空、容量为正等）在引擎构造时统一执行。
type File struct {
	// Name 日志器名称
	Name string `koanf:"name"`

	// Root 日志根目录
	Root string `koanf:"root"`

	// TimeLayout 行内时间显示布局
	TimeLayout string `koanf:"time_layout"`

	// PeriodLayout 日期目录布局
	PeriodLayout string `koanf:"period_layout"`

	// QueueCapacity 队列容量
	QueueCapacity int `koanf:"queue_capacity"`

	// Overflow 队列满时的背压策略："block" 或 "drop"
	Overflow string `koanf:"overflow"`

	// MaxFileSizeMB 单文件大小上限（MB），0 表示不限制
	MaxFileSizeMB int `koanf:"max_file_size_mb"`

	// Rotation 保留清理策略
	Rotation Rotation `koanf:"rotation"`
}

// Rotation 保留清理策略的文件表示。
type Rotation struct {
	// Enabled 是否启用保留清理
	Enabled bool `koanf:"enabled"`

	// Retention 保留时长（如 "720h"）
	Retention time.Duration `koanf:"retention"`

	// Interval 清扫间隔（如 "1h"）
	Interval time.Duration `koanf:"interval"`
}

// Load 从文件加载配置。
//
// 根据扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //#nosec G304 -- 配置路径由调用方提供
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置，需要显式指定格式。
//
// 空数据返回零值配置（全部字段由引擎默认值接管），与空文件行为一致。
func LoadBytes(data []byte, format Format) (*File, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(delim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	var f File
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return &f, nil
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// parserFor 返回格式对应的 koanf 解析器。
func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return kyaml.Parser(), nil
	case FormatJSON:
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
