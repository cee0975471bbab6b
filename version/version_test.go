package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "tagged",
			info: Info{Version: "v1.2.0", CommitHash: "0123456789abcdef", BuildTime: "2026-01-02"},
			want: "cs2ts v1.2.0 (commit 0123456, built 2026-01-02)",
		},
		{
			name: "dev",
			info: Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"},
			want: "cs2ts dev (commit dev, built unknown)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestApplyBuildSettings(t *testing.T) {
	info := Info{CommitHash: "dev", BuildTime: "unknown"}
	applyBuildSettings(&info, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abcdef0123"},
		{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		{Key: "GOOS", Value: "linux"},
	})
	assert.Equal(t, "abcdef0123", info.CommitHash)
	assert.Equal(t, "2026-03-04T05:06:07Z", info.BuildTime)

	// ldflags values win
	info = Info{CommitHash: "feedbee", BuildTime: "release"}
	applyBuildSettings(&info, []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}})
	assert.Equal(t, "feedbee", info.CommitHash)
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Equal(t, "^1.0", info.ManifestSchema)
}
