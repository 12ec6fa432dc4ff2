package xengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/xconfig"
)

func TestOverflowString(t *testing.T) {
	assert.Equal(t, "block", OverflowBlock.String())
	assert.Equal(t, "drop", OverflowDrop.String())
	assert.Contains(t, Overflow(9).String(), "unknown")
}

func TestParseOverflow(t *testing.T) {
	tests := []struct {
		in      string
		want    Overflow
		wantErr bool
	}{
		{"block", OverflowBlock, false},
		{"drop", OverflowDrop, false},
		{"BLOCK", OverflowBlock, false},
		{"Drop", OverflowDrop, false},
		{"discard", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOverflow(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFile(t *testing.T) {
	t.Run("非零值覆盖默认值", func(t *testing.T) {
		cfg := &xconfig.File{
			Root:          "/var/log/app",
			TimeLayout:    "15:04:05",
			PeriodLayout:  "2006-01",
			QueueCapacity: 128,
			Overflow:      "drop",
			MaxFileSizeMB: 50,
			Rotation: xconfig.Rotation{
				Enabled:   true,
				Retention: 168 * time.Hour,
				Interval:  30 * time.Minute,
			},
		}

		opts := defaultEngineOptions()
		FromFile(cfg)(opts)

		assert.Equal(t, "/var/log/app", opts.root)
		assert.Equal(t, "15:04:05", opts.timeLayout)
		assert.Equal(t, "2006-01", opts.periodLayout)
		assert.Equal(t, 128, opts.queueCapacity)
		assert.Equal(t, OverflowDrop, opts.overflow)
		assert.Equal(t, 50, opts.maxFileSizeMB)
		assert.True(t, opts.rotation.Enabled)
		assert.Equal(t, 168*time.Hour, opts.rotation.Retention)
		assert.Equal(t, 30*time.Minute, opts.rotation.Interval)
	})

	t.Run("零值字段保留默认值", func(t *testing.T) {
		opts := defaultEngineOptions()
		FromFile(&xconfig.File{})(opts)

		assert.Equal(t, DefaultRoot, opts.root)
		assert.Equal(t, DefaultQueueCapacity, opts.queueCapacity)
		assert.Equal(t, OverflowBlock, opts.overflow)
		assert.False(t, opts.rotation.Enabled)
	})

	t.Run("nil 配置是空操作", func(t *testing.T) {
		opts := defaultEngineOptions()
		FromFile(nil)(opts)
		assert.Equal(t, DefaultRoot, opts.root)
	})

	t.Run("无效溢出策略在构造时上报", func(t *testing.T) {
		_, err := New("app",
			WithRoot(t.TempDir()),
			FromFile(&xconfig.File{Overflow: "discard"}),
		)
		require.ErrorIs(t, err, ErrInvalidOverflow)
	})
}
