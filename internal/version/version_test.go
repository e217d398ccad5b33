package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withBuild makes Get see bi and the given link-time values.
func withBuild(t *testing.T, bi *debug.BuildInfo, v, c, d string) {
	t.Helper()

	oldRead, oldV, oldC, oldD := readBuildInfo, version, commit, date
	t.Cleanup(func() { readBuildInfo, version, commit, date = oldRead, oldV, oldC, oldD })

	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	version, commit, date = v, c, d
}

func TestGet_NothingKnown(t *testing.T) {
	withBuild(t, nil, "", "", "")

	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Empty(t, info.Commit)
	assert.Equal(t, runtime.Version(), info.Go)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Equal(t, "fxpreview dev", info.Short())
}

func TestGet_FromBuildInfo(t *testing.T) {
	withBuild(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, "", "", "")

	info := Get()
	assert.Equal(t, "1.4.0", info.Version)
	assert.Equal(t, "0123456789ab", info.Commit)
	assert.True(t, info.Modified)
	assert.Contains(t, info.String(), "fxpreview 1.4.0 0123456789ab+dirty 2026-01-02T03:04:05Z")
}

func TestGet_LinkerValuesWin(t *testing.T) {
	withBuild(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	}, "2.0.0", "abc", "")

	info := Get()
	assert.Equal(t, "2.0.0", info.Version)
	assert.Equal(t, "abc", info.Commit)
	assert.NotContains(t, info.String(), "+dirty")
}

func TestGet_DevelModuleVersionIgnored(t *testing.T) {
	withBuild(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "", "", "")

	assert.Equal(t, "dev", Get().Version)
}
