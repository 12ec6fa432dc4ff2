package xfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRoot(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "相对路径",
			path: "./logs",
			want: "logs",
		},
		{
			name: "绝对路径",
			path: "/var/log/app",
			want: "/var/log/app",
		},
		{
			name: "冗余斜杠被规范化",
			path: "logs//app/",
			want: "logs/app",
		},
		{
			name:    "空路径",
			path:    "",
			wantErr: ErrEmptyPath,
		},
		{
			name:    "空字节",
			path:    "logs\x00evil",
			wantErr: ErrNullByte,
		},
		{
			name:    "相对路径穿越",
			path:    "../etc/passwd",
			wantErr: ErrPathTraversal,
		},
		{
			name: "包含点点的合法目录名",
			path: "logs..2026",
			want: "logs..2026",
		},
		{
			name: "绝对路径中的点点被解析",
			path: "/var/log/../tmp",
			want: "/var/tmp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeRoot(tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
