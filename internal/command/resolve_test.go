package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/wire"
)

func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		Outputs: []store.Output{
			{ID: 10, Make: "Dell", Model: "U2412"},
			{ID: 11, Name: "HDMI-A-1", Make: "LG", Model: "27GL850"},
		},
		Groups: []store.WorkspaceGroup{
			{ID: 20, Outputs: []wire.ObjectID{10}, Workspaces: []wire.ObjectID{30, 31}},
			{ID: 21, Outputs: []wire.ObjectID{11}, Workspaces: []wire.ObjectID{32}},
		},
		Workspaces: []store.Workspace{
			{ID: 30, Name: "1"},
			{ID: 31, Name: "2"},
			{ID: 32, Name: "1"},
		},
		Toplevels: []store.Toplevel{
			{ID: 40, Identifier: "abc123"},
			{ID: 41, Identifier: "abc456"},
		},
	}
}

func TestResolveOutputFallsBackToMakeModel(t *testing.T) {
	snap := sampleSnapshot()

	o, err := ResolveOutput(snap, "Dell+U2412")
	require.NoError(t, err)
	assert.Equal(t, wire.ObjectID(10), o.ID)

	o, err = ResolveOutput(snap, "HDMI-A-1")
	require.NoError(t, err)
	assert.Equal(t, wire.ObjectID(11), o.ID)

	_, err = ResolveOutput(snap, "LG+27GL850")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeUnknownDisplay), "a named output is not addressed by make+model")
}

func TestResolveToplevelPrefix(t *testing.T) {
	snap := sampleSnapshot()

	_, err := ResolveToplevel(snap, "abc")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeAmbiguous))

	tl, err := ResolveToplevel(snap, "abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", tl.Identifier)

	_, err = ResolveToplevel(snap, "zzz")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeNotFound))

	_, err = ResolveToplevel(snap, "")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeInvalidInput))
}

func TestResolveWorkspace(t *testing.T) {
	snap := sampleSnapshot()

	_, err := ResolveWorkspace(snap, WorkspaceRef{Name: "1"})
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeAmbiguous))

	r, err := ResolveWorkspace(snap, WorkspaceRef{Name: "1", Display: "HDMI-A-1"})
	require.NoError(t, err)
	assert.Equal(t, wire.ObjectID(32), r.Workspace.ID)
	assert.Equal(t, wire.ObjectID(21), r.Group.ID)
	assert.Equal(t, 0, r.Index)

	r, err = ResolveWorkspace(snap, WorkspaceRef{Name: "2"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Index)
	assert.Equal(t, wire.ObjectID(20), r.Group.ID)

	_, err = ResolveWorkspace(snap, WorkspaceRef{Name: "2", Display: "HDMI-A-1"})
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeNotFound))

	_, err = ResolveWorkspace(snap, WorkspaceRef{Name: "9"})
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeNotFound))

	_, err = ResolveWorkspace(snap, WorkspaceRef{Name: "1", Display: "DP-9"})
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeUnknownDisplay))
}

func TestResolveGroupWithoutWorkspaceGroup(t *testing.T) {
	snap := sampleSnapshot()
	snap.Groups = snap.Groups[:1]

	_, err := ResolveGroup(snap, "HDMI-A-1")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeUnknownDisplay))
}
