package xconfig

import "errors"

// 配置加载和解析相关错误。
var (
	// ErrEmptyPath 配置文件路径为空
	ErrEmptyPath = errors.New("xconfig: empty config path")

	// ErrUnsupportedFormat 不支持的配置格式
	ErrUnsupportedFormat = errors.New("xconfig: unsupported config format")

	// ErrLoadFailed 配置读取失败
	ErrLoadFailed = errors.New("xconfig: failed to load config")

	// ErrParseFailed 配置解析失败
	ErrParseFailed = errors.New("xconfig: failed to parse config")

	// ErrUnmarshalFailed 配置反序列化失败
	ErrUnmarshalFailed = errors.New("xconfig: failed to unmarshal config")

	// ErrNilCallback 监视回调不能为 nil
	ErrNilCallback = errors.New("xconfig: nil watch callback")
)
