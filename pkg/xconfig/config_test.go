package xconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
name: payment
root: /var/log/payment
time_layout: "15:04:05.000"
period_layout: "2006-01-02"
queue_capacity: 4096
overflow: drop
max_file_size_mb: 100
rotation:
  enabled: true
  retention: 720h
  interval: 1h
`

const jsonConfig = `{
  "name": "billing",
  "queue_capacity": 128,
  "rotation": {"enabled": false, "retention": "168h", "interval": "30m"}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "engine.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "payment", cfg.Name)
	assert.Equal(t, "/var/log/payment", cfg.Root)
	assert.Equal(t, "15:04:05.000", cfg.TimeLayout)
	assert.Equal(t, "2006-01-02", cfg.PeriodLayout)
	assert.Equal(t, 4096, cfg.QueueCapacity)
	assert.Equal(t, "drop", cfg.Overflow)
	assert.Equal(t, 100, cfg.MaxFileSizeMB)
	assert.True(t, cfg.Rotation.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.Rotation.Retention)
	assert.Equal(t, time.Hour, cfg.Rotation.Interval)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeFile(t, "engine.json", jsonConfig))
	require.NoError(t, err)

	assert.Equal(t, "billing", cfg.Name)
	assert.Equal(t, 128, cfg.QueueCapacity)
	assert.False(t, cfg.Rotation.Enabled)
	assert.Equal(t, 168*time.Hour, cfg.Rotation.Retention)
	assert.Equal(t, 30*time.Minute, cfg.Rotation.Interval)
	// 未设置的字段保持零值，由引擎默认值接管
	assert.Empty(t, cfg.Root)
	assert.Zero(t, cfg.MaxFileSizeMB)
}

func TestLoadErrors(t *testing.T) {
	t.Run("空路径", func(t *testing.T) {
		_, err := Load("")
		require.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("未知扩展名", func(t *testing.T) {
		_, err := Load("engine.toml")
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, ErrLoadFailed)
	})

	t.Run("格式损坏", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "name: [unclosed"))
		require.ErrorIs(t, err, ErrParseFailed)
	})
}

func TestLoadBytes(t *testing.T) {
	t.Run("显式格式", func(t *testing.T) {
		cfg, err := LoadBytes([]byte(jsonConfig), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "billing", cfg.Name)
	})

	t.Run("空数据返回零值配置", func(t *testing.T) {
		cfg, err := LoadBytes(nil, FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, &File{}, cfg)
	})

	t.Run("无效格式", func(t *testing.T) {
		_, err := LoadBytes([]byte("{}"), Format("toml"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestWatchReload(t *testing.T) {
	path := writeFile(t, "engine.yaml", "name: before\n")

	reloaded := make(chan *File, 1)
	w, err := Watch(path, func(cfg *File, err error) {
		if err == nil {
			select {
			case reloaded <- cfg:
			default:
			}
		}
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	w.Start()
	defer func() { require.NoError(t, w.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("name: after\n"), 0640))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "after", cfg.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("未收到重载回调")
	}
}

func TestWatchValidation(t *testing.T) {
	t.Run("空路径", func(t *testing.T) {
		_, err := Watch("", func(*File, error) {})
		require.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("nil 回调", func(t *testing.T) {
		_, err := Watch("engine.yaml", nil)
		require.ErrorIs(t, err, ErrNilCallback)
	})

	t.Run("不支持的格式", func(t *testing.T) {
		_, err := Watch("engine.ini", func(*File, error) {})
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestWatcherStopIdempotent(t *testing.T) {
	path := writeFile(t, "engine.yaml", "name: x\n")

	w, err := Watch(path, func(*File, error) {})
	require.NoError(t, err)
	w.Start()

	require.NoError(t, w.Stop())
	// 重复 Stop 是空操作
	require.NoError(t, w.Stop())
}
