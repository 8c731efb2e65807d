package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/conductor/internal/engine"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/wire"
	"github.com/grovetools/conductor/logging"
	"github.com/grovetools/conductor/testutil"
)

const allWorkspaceCaps = protocol.WorkspaceCapActivate | protocol.WorkspaceCapDeactivate | protocol.WorkspaceCapAssign

const allCosmicCaps = protocol.CosmicWorkspaceCapRename | protocol.CosmicWorkspaceCapSetTilingState |
	protocol.CosmicWorkspaceCapPin | protocol.CosmicWorkspaceCapMove

func workspaces(names ...string) []testutil.Workspace {
	out := make([]testutil.Workspace, len(names))
	for i, n := range names {
		out[i] = testutil.Workspace{Name: n, Capabilities: allWorkspaceCaps, CosmicCapabilities: allCosmicCaps}
	}
	return out
}

// twoDisplays serves DP-1 with workspaces A..D and HDMI-A-1 with E.
func twoDisplays() *testutil.Compositor {
	c := testutil.NewCompositor()
	c.Outputs = []testutil.Output{
		{Name: "DP-1", Make: "Dell", Model: "U2720Q", Width: 3840, Height: 2160, Refresh: 60000},
		{Name: "HDMI-A-1", Make: "LG", Model: "27GL850", Width: 2560, Height: 1440, Refresh: 144000},
	}
	c.Groups = []testutil.Group{
		{Output: "DP-1", Workspaces: workspaces("A", "B", "C", "D")},
		{Output: "HDMI-A-1", Workspaces: workspaces("E")},
	}
	c.Groups[0].Workspaces[0].State = protocol.WorkspaceStateActive
	c.Toplevels = []testutil.Toplevel{
		{Identifier: "abc123", Title: "Terminal", AppID: "foot", Output: "DP-1", Workspace: "A"},
		{Identifier: "abc456", Title: "Browser", AppID: "org.mozilla.firefox", Output: "DP-1", Workspace: "B",
			States: []uint32{protocol.ToplevelStateMaximized}},
		{Identifier: "def789", Title: "Editor", AppID: "dev.zed.Zed", Output: "HDMI-A-1", Workspace: "E"},
	}
	return c
}

type harness struct {
	layer    *Layer
	session  *engine.Session
	comp     *testutil.Compositor
	ctx      context.Context
	warnings *bytes.Buffer
}

func newHarness(t *testing.T, c *testutil.Compositor) *harness {
	t.Helper()
	s := engine.NewSession(c, engine.Options{
		Sleep: func(context.Context, time.Duration) error { return nil },
	})
	var buf bytes.Buffer
	return &harness{
		layer:    New(s),
		session:  s,
		comp:     c,
		ctx:      logging.WithWriter(context.Background(), &buf),
		warnings: &buf,
	}
}

// requests returns the names of the mutation requests sent so far.
func (h *harness) requests() []string {
	var out []string
	for _, c := range h.comp.Mutations() {
		out = append(out, c.Request)
	}
	return out
}

func (h *harness) cosmicHandle(t *testing.T, group int, name string) wire.ObjectID {
	t.Helper()
	ws, ok := h.session.Store.Workspace(h.comp.WorkspaceHandle(group, name))
	require.True(t, ok)
	require.NotZero(t, ws.CosmicHandle)
	return ws.CosmicHandle
}
