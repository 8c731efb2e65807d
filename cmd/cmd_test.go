package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/conductor/cli"
	"github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/engine"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/testutil"
)

const workspaceCaps = protocol.WorkspaceCapActivate | protocol.WorkspaceCapDeactivate | protocol.WorkspaceCapAssign

const cosmicCaps = protocol.CosmicWorkspaceCapRename | protocol.CosmicWorkspaceCapSetTilingState |
	protocol.CosmicWorkspaceCapPin | protocol.CosmicWorkspaceCapMove

func workspaces(names ...string) []testutil.Workspace {
	out := make([]testutil.Workspace, len(names))
	for i, n := range names {
		out[i] = testutil.Workspace{Name: n, Capabilities: workspaceCaps, CosmicCapabilities: cosmicCaps}
	}
	return out
}

func session() *testutil.Compositor {
	c := testutil.NewCompositor()
	c.Outputs = []testutil.Output{
		{Name: "DP-1", Make: "Dell", Model: "U2720Q", Width: 3840, Height: 2160, Refresh: 60000},
		{Name: "HDMI-A-1", Make: "LG", Model: "27GL850", Width: 2560, Height: 1440, Refresh: 144000},
	}
	c.Groups = []testutil.Group{
		{Output: "DP-1", Workspaces: workspaces("1", "2", "3")},
		{Output: "HDMI-A-1", Workspaces: workspaces("4")},
	}
	c.Toplevels = []testutil.Toplevel{
		{Identifier: "abc123", Title: "Terminal", AppID: "foot", Output: "DP-1", Workspace: "1"},
		{Identifier: "abc456", Title: "Browser", AppID: "org.mozilla.firefox", Output: "DP-1", Workspace: "2"},
		{Identifier: "def789", Title: "Editor", AppID: "dev.zed.Zed", Output: "HDMI-A-1", Workspace: "4"},
	}
	return c
}

type result struct {
	stdout, stderr string
	code           int
}

// execute runs conductor against c in an isolated environment.
func execute(t *testing.T, c *testutil.Compositor, args ...string) result {
	t.Helper()
	testutil.IsolateEnv(t)

	prev := connect
	connect = func(ctx context.Context, display string, opts engine.Options) (*engine.Session, error) {
		if c == nil {
			return nil, errors.Transport(fmt.Errorf("connection refused"), "connect")
		}
		opts.Sleep = func(context.Context, time.Duration) error { return nil }
		return engine.NewSession(c, opts), nil
	}
	t.Cleanup(func() { connect = prev })

	var out, errb bytes.Buffer
	code := Run(args, &out, &errb)
	return result{stdout: out.String(), stderr: errb.String(), code: code}
}

func decode(t *testing.T, s string) []map[string]interface{} {
	t.Helper()
	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &docs), s)
	return docs
}

func TestOutputsJSON(t *testing.T) {
	for _, args := range [][]string{
		{"outputs", "--format", "json"},
		{"o", "--format", "json"},
		{"outputs", "list", "--format", "json"},
	} {
		t.Run(args[0], func(t *testing.T) {
			r := execute(t, session(), args...)
			require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

			docs := decode(t, r.stdout)
			require.Len(t, docs, 2)
			assert.Equal(t, "DP-1", docs[0]["display"])
			assert.Equal(t, "HDMI-A-1", docs[1]["display"])
		})
	}
}

func TestToplevelsFilter(t *testing.T) {
	r := execute(t, session(), "toplevels", "--app-id", "org.mozilla.*", "--format", "json")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	docs := decode(t, r.stdout)
	require.Len(t, docs, 1)
	assert.Equal(t, "abc456", docs[0]["identifier"])

	r = execute(t, session(), "window", "list", "--display", "HDMI-A-1", "--format", "json")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	docs = decode(t, r.stdout)
	require.Len(t, docs, 1)
	assert.Equal(t, "def789", docs[0]["identifier"])
}

func TestToplevelsHuman(t *testing.T) {
	r := execute(t, session(), "t")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Toplevels:")
	assert.Contains(t, r.stdout, "abc123")
	assert.Contains(t, r.stdout, "dev.zed.Zed")
}

func TestWorkspaceMoveToPos(t *testing.T) {
	c := session()
	r := execute(t, c, "workspaces", "move-to-pos", "3", "1", "--format", "json")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	calls := c.Mutations()
	require.Len(t, calls, 2)
	assert.Equal(t, "move_before", calls[0].Request)
	assert.Equal(t, "commit", calls[1].Request)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &doc))
	assert.Equal(t, true, doc["ok"])
	assert.Equal(t, "3", doc["workspace"])
}

func TestWorkspaceMoveToCurrentPositionWarns(t *testing.T) {
	c := session()
	r := execute(t, c, "w", "move-to-pos", "2", "2")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	assert.Empty(t, c.Mutations())
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Workspace is already at this position")
}

func TestWorkspaceMoveToDisplay(t *testing.T) {
	c := session()
	r := execute(t, c, "workspaces", "move-to-display", "1", "HDMI-A-1")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	calls := c.Mutations()
	require.Len(t, calls, 2)
	assert.Equal(t, "move_after", calls[0].Request)
	assert.Equal(t, c.WorkspaceHandle(1, "4"), calls[0].Args[0])
}

func TestWorkspaceTiling(t *testing.T) {
	c := session()
	r := execute(t, c, "workspaces", "tiling", "2", "on")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	require.NotEmpty(t, c.Mutations())
	assert.Equal(t, "set_tiling_state", c.Mutations()[0].Request)

	r = execute(t, session(), "workspaces", "tiling", "2", "sideways")
	assert.Equal(t, cli.ExitUserError, r.code)
	assert.Contains(t, r.stderr, "tiling must be on or off")
}

func TestErrorsExitCodes(t *testing.T) {
	tests := []struct {
		name string
		comp *testutil.Compositor
		args []string
		code int
		want string
	}{
		{"ambiguous prefix", session(), []string{"toplevels", "maximize", "abc"}, cli.ExitUserError, "ambiguous"},
		{"unknown workspace", session(), []string{"workspaces", "pin", "9"}, cli.ExitUserError, "does not exist"},
		{"unknown display", session(), []string{"workspaces", "move-to-display", "1", "DP-9"}, cli.ExitUserError, "unknown display: DP-9"},
		{"bad position", session(), []string{"workspaces", "move-to-pos", "1", "first"}, cli.ExitUserError, "non-negative number"},
		{"exclusive flags", session(), []string{"toplevels", "sticky", "def", "--set", "--unset"}, cli.ExitUserError, "mutually exclusive"},
		{"wrong arg count", session(), []string{"workspaces", "rename", "1"}, cli.ExitUserError, "accepts 2 arg(s)"},
		{"no compositor", nil, []string{"outputs"}, cli.ExitFailure, "Is a Wayland compositor running?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := execute(t, tt.comp, tt.args...)
			assert.Equal(t, tt.code, r.code)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestJSONErrors(t *testing.T) {
	r := execute(t, session(), "workspaces", "pin", "9", "--format", "json")
	require.Equal(t, cli.ExitUserError, r.code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(r.stderr), &doc), r.stderr)
	assert.Equal(t, "NOT_FOUND", doc["code"])
}

func TestConfiguredFormatSelectsJSONErrors(t *testing.T) {
	testutil.IsolateEnv(t)
	path := testutil.WriteConfig(t, "conductor.yml", "output:\n  format: json\n")

	r := execute(t, session(), "--config", path, "workspaces", "pin", "9")
	require.Equal(t, cli.ExitUserError, r.code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(r.stderr), &doc), r.stderr)
	assert.Equal(t, "NOT_FOUND", doc["code"])
	assert.Equal(t, false, doc["ok"])
}

func TestConfigFileDefaults(t *testing.T) {
	testutil.IsolateEnv(t)

	prev := connect
	t.Cleanup(func() { connect = prev })
	var got engine.Options
	connect = func(ctx context.Context, display string, opts engine.Options) (*engine.Session, error) {
		got = opts
		assert.Equal(t, "wayland-7", display)
		opts.Sleep = func(context.Context, time.Duration) error { return nil }
		return engine.NewSession(session(), opts), nil
	}

	testutil.WriteConfig(t, "conductor.yml", `
output:
  format: json
convergence:
  initial_delay: 5ms
  timeout: 3s
wayland:
  display: wayland-7
`)

	var out, errb bytes.Buffer
	code := Run([]string{"outputs", "--timeout", "1s"}, &out, &errb)
	require.Equal(t, cli.ExitSuccess, code, errb.String())

	assert.Len(t, decode(t, out.String()), 2)
	assert.Equal(t, 5*time.Millisecond, got.InitialDelay)
	assert.Equal(t, time.Second, got.Timeout)
}

func TestConfigCommand(t *testing.T) {
	testutil.IsolateEnv(t)
	path := testutil.WriteConfig(t, "conductor.toml", "[logging]\nlevel = \"info\"\n")

	var out, errb bytes.Buffer
	code := Run([]string{"config", "--format", "json"}, &out, &errb)
	require.Equal(t, cli.ExitSuccess, code, errb.String())

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, path, doc["path"])
	assert.Equal(t, "json", doc["output"].(map[string]interface{})["format"])
	assert.Equal(t, "20ms", doc["convergence"].(map[string]interface{})["initial_delay"])
	assert.Equal(t, "info", doc["logging"].(map[string]interface{})["level"])
}

func TestInvalidConfig(t *testing.T) {
	testutil.IsolateEnv(t)
	testutil.WriteConfig(t, "conductor.yml", "output:\n  format: xml\n")

	var out, errb bytes.Buffer
	code := Run([]string{"outputs"}, &out, &errb)
	assert.Equal(t, cli.ExitUserError, code)
	assert.Contains(t, errb.String(), "conductor schema config")

	out.Reset()
	errb.Reset()
	code = Run([]string{"version"}, &out, &errb)
	assert.Equal(t, cli.ExitSuccess, code, errb.String())
	assert.Contains(t, out.String(), "conductor")
}

func TestSchemaCommand(t *testing.T) {
	for _, name := range schemaNames() {
		t.Run(name, func(t *testing.T) {
			r := execute(t, nil, "schema", name)
			require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

			var doc map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(r.stdout), &doc))
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
			if name != "config" {
				assert.Equal(t, "array", doc["type"])
				items, ok := doc["items"].(map[string]interface{})
				require.True(t, ok, r.stdout)
				assert.NotEmpty(t, items["properties"])
			}
		})
	}

	r := execute(t, nil, "schema", "bogus")
	assert.Equal(t, cli.ExitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown schema")
}
