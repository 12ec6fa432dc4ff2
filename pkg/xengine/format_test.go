package xengine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDir(t *testing.T) {
	assert.Equal(t, filepath.Join("logs", "2026-08-23"), DefaultDir("logs", "2026-08-23"))
}

func TestDefaultFile(t *testing.T) {
	assert.Equal(t, filepath.Join("logs", "2026-08-23", "info.log"),
		DefaultFile(filepath.Join("logs", "2026-08-23"), "INFO"))
	assert.Equal(t, filepath.Join("d", "audit.log"), DefaultFile("d", "AUDIT"))
}

func TestDefaultFormat(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "单行",
			lines: []string{"hello"},
			want:  "[12:00:00.000] - INFO - app - hello",
		},
		{
			name:  "多行重复前缀",
			lines: []string{"a", "b"},
			want:  "[12:00:00.000] - INFO - app - a\n[12:00:00.000] - INFO - app - b",
		},
		{
			name:  "空内容只有前缀",
			lines: nil,
			want:  "[12:00:00.000] - INFO - app - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultFormat("12:00:00.000", "INFO", "app", tt.lines)
			assert.Equal(t, tt.want, got)
		})
	}
}
