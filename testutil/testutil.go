// Package testutil provides helpers shared by conductor's package tests:
// an in-memory transport, a scripted compositor and environment setup.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// IsolateEnv points the XDG and Wayland environment at a temporary
// directory so tests never see the developer's session or config.
func IsolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(dir, "run"))
	t.Setenv("HOME", dir)
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("CONDUCTOR_LOG_LEVEL", "")
	return dir
}

// WriteConfig writes content to conductor's config directory under
// XDG_CONFIG_HOME and returns the file path.
func WriteConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "conductor")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
