package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = prev })
}

func withLinkerValues(t *testing.T, version, commit, date string) {
	t.Helper()
	pv, pc, pd := Version, Commit, BuildDate
	Version, Commit, BuildDate = version, commit, date
	t.Cleanup(func() { Version, Commit, BuildDate = pv, pc, pd })
}

func TestGetInfoFromBuildInfo(t *testing.T) {
	withLinkerValues(t, "", "", "")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	info := GetInfo()
	assert.Equal(t, "v0.3.1", info.Version)
	assert.Equal(t, "0123456789ab", info.Commit)
	assert.Equal(t, "2026-10-01T12:00:00Z", info.BuildDate)
	assert.True(t, info.Modified)
	assert.NotEmpty(t, info.GoVersion)
}

func TestLinkerValuesWin(t *testing.T) {
	withLinkerValues(t, "v1.0.0", "cafe", "2026-10-19")
	withBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "beef"}},
	})

	info := GetInfo()
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "cafe", info.Commit)
	assert.Equal(t, "2026-10-19", info.BuildDate)
}

func TestDevFallbacks(t *testing.T) {
	withLinkerValues(t, "", "", "")
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	info := GetInfo()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "none", info.Commit)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.False(t, info.Modified)
}
