package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("xdg first", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, []string{"/xdg/conductor", filepath.Join(home, ".config", "conductor")}, ConfigDirs())
	})

	t.Run("home only", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		assert.Equal(t, []string{filepath.Join(home, ".config", "conductor")}, ConfigDirs())
	})
}

func TestStatePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "")
	assert.Equal(t, filepath.Join(home, ".local", "state", "conductor", "conductor.log"), DefaultLogFile())

	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, "/state/conductor", StateDir())
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CONDUCTOR_TEST_DIR", "logs")

	assert.Equal(t, filepath.Join(home, "logs", "c.log"), Expand("~/$CONDUCTOR_TEST_DIR/c.log"))
	assert.Equal(t, "/abs/c.log", Expand("/abs/c.log"))
	assert.Equal(t, "~user/x", Expand("~user/x"))
}
