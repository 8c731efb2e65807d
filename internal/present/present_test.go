package present

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/wire"
)

func fixture() store.Snapshot {
	return store.Snapshot{
		Outputs: []store.Output{
			{
				ID: 10, Name: "DP-1", Make: "Dell", Model: "U2720Q",
				PhysicalWidth: 600, PhysicalHeight: 340, Scale: 2,
				Modes: []store.Mode{
					{Width: 3840, Height: 2160, Refresh: 60000, Current: true, Preferred: true},
					{Width: 2560, Height: 1440, Refresh: 59951},
				},
			},
			{
				ID: 11, Make: "LG", Model: "27GL850", X: 1920,
				PhysicalWidth: 600, PhysicalHeight: 340, Transform: protocol.Transform90, Scale: 1,
				Modes: []store.Mode{{Width: 2560, Height: 1440, Refresh: 144000, Current: true, Preferred: true}},
			},
		},
		Groups: []store.WorkspaceGroup{
			{ID: 20, Outputs: []wire.ObjectID{10}, Workspaces: []wire.ObjectID{30, 31}, Capabilities: protocol.GroupCapCreateWorkspace},
			{ID: 21, Outputs: []wire.ObjectID{11}, Workspaces: []wire.ObjectID{32}},
		},
		Workspaces: []store.Workspace{
			{
				ID: 30, Name: "1", WorkspaceID: "ws-1", Coordinates: []uint32{0},
				State: store.WorkspaceActive, Tiling: store.TilingEnabled,
				ExtCapabilities:    store.Capabilities(store.CapActivate | store.CapDeactivate),
				CosmicCapabilities: store.Capabilities(store.CapMove | store.CapPin),
			},
			{ID: 31, Name: "2", Tiling: store.TilingDisabled, Pinned: true},
			{ID: 32, Name: "web", State: store.WorkspaceHidden},
		},
		Toplevels: []store.Toplevel{
			{
				ID: 40, Identifier: "abc123", Title: "Terminal", AppID: "foot",
				State: store.StateActivated, Outputs: []wire.ObjectID{10}, Workspaces: []wire.ObjectID{30},
			},
			{
				ID: 41, Identifier: "def456", Title: "Browser", AppID: "firefox",
				State:   store.StateMaximized | store.StateFullscreen,
				Outputs: []wire.ObjectID{10, 11}, Workspaces: []wire.ObjectID{30},
			},
		},
	}
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestHumanOutputs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHuman, "Outputs", Outputs(fixture())))
	golden(t).Assert(t, "outputs", buf.Bytes())
}

func TestHumanToplevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHuman, "Toplevels", Toplevels(fixture())))
	golden(t).Assert(t, "toplevels", buf.Bytes())
}

func TestHumanWorkspaceGroups(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHuman, "Workspace Groups", WorkspaceGroups(fixture())))
	golden(t).Assert(t, "workspace_groups", buf.Bytes())
}

func TestHumanWorkspacesWithCapabilities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHuman, "Workspaces", Workspaces(fixture(), true)))
	golden(t).Assert(t, "workspaces_capabilities", buf.Bytes())
}

func TestJSONToplevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, "Toplevels", Toplevels(fixture())))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "compact JSON is one line")
	assert.JSONEq(t, `[
		{"identifier":"abc123","title":"Terminal","app_id":"foot","state":["activated"],"workspaces":["1"],"outputs":["DP-1"]},
		{"identifier":"def456","title":"Browser","app_id":"firefox","state":["maximized","fullscreen"],"workspaces":["1"],"outputs":["DP-1","LG+27GL850"]}
	]`, buf.String())
}

func TestToplevelGeometry(t *testing.T) {
	snap := fixture()
	snap.Toplevels[0].Geometry = map[wire.ObjectID]store.Rect{
		10: {X: 5, Y: 40, Width: 800, Height: 600},
		99: {Width: 1},
	}

	views := Toplevels(snap)
	require.Len(t, views, 2)
	assert.Equal(t, map[string]store.Rect{"DP-1": {X: 5, Y: 40, Width: 800, Height: 600}}, views[0].Geometry)
	assert.Nil(t, views[1].Geometry)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, "Toplevels", views[:1]))
	assert.Contains(t, buf.String(), `"geometry":{"DP-1":{"x":5,"y":40,"width":800,"height":600}}`)

	buf.Reset()
	require.NoError(t, Render(&buf, FormatHuman, "Toplevels", views[:1]))
	assert.Contains(t, buf.String(), "    Geometry: 800x600+5+40\n")
}

func TestPrinterLabelStyle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).WithLabelStyle(lipgloss.NewStyle())
	p.Field("Name", "1")
	require.NoError(t, p.Err())
	assert.Equal(t, "Name: 1\n", buf.String())
}

func TestPrettyJSONWorkspaces(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatPrettyJSON, "Workspaces", Workspaces(fixture(), false)))

	assert.Contains(t, buf.String(), "\n  {\n    \"name\": \"1\",")
	assert.NotContains(t, buf.String(), "capabilities")
	assert.JSONEq(t, `{
		"name":"2","position":2,"displays":["DP-1"],"state":[],"tiling":"floating","pinned":true,"toplevel_count":0
	}`, mustSecond(t, buf.Bytes()))
}

func mustSecond(t *testing.T, doc []byte) string {
	t.Helper()
	var items []map[string]any
	require.NoError(t, json.Unmarshal(doc, &items))
	require.Len(t, items, 3)
	out, err := json.Marshal(items[1])
	require.NoError(t, err)
	return string(out)
}

func TestEmptyListings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHuman, "Toplevels", Toplevels(store.Snapshot{})))
	assert.Equal(t, "Toplevels:\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatJSON, "Toplevels", Toplevels(store.Snapshot{})))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("yaml")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeInvalidInput))
}

func TestMessage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Message(&buf, FormatHuman, "Pinned workspace 2", nil))
	assert.Equal(t, "Pinned workspace 2\n", buf.String())

	buf.Reset()
	require.NoError(t, Message(&buf, FormatJSON, "Pinned workspace 2", map[string]any{"workspace": "2"}))
	assert.JSONEq(t, `{"ok":true,"message":"Pinned workspace 2","workspace":"2"}`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestPrinterStickyError(t *testing.T) {
	err := Render(failingWriter{}, FormatHuman, "Outputs", Outputs(fixture()))
	assert.ErrorIs(t, err, assert.AnError)
}
