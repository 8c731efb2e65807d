package applier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/registry"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/wire"
	"github.com/grovetools/conductor/testutil"
)

type harness struct {
	fake    *testutil.FakeTransport
	store   *store.Store
	binder  *registry.Binder
	applier *Applier
}

func newHarness(t *testing.T, globals ...protocol.RegistryGlobal) *harness {
	t.Helper()
	fake := testutil.NewFakeTransport()
	s := store.New()
	b := registry.New(fake, s)
	h := &harness{fake: fake, store: s, binder: b, applier: New(fake, s, b)}
	for _, g := range globals {
		require.NoError(t, h.applier.Apply(g))
	}
	return h
}

func global(name uint32, iface string, version uint32) protocol.RegistryGlobal {
	return protocol.RegistryGlobal{Target: protocol.Target{Object: testutil.RegistryID}, Name: name, Interface: iface, Version: version}
}

func at(id wire.ObjectID) protocol.Target { return protocol.Target{Object: id} }

func (h *harness) apply(t *testing.T, events ...protocol.Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, h.applier.Apply(ev))
	}
}

func TestOutputEvents(t *testing.T) {
	h := newHarness(t, global(1, protocol.Output, 4))
	out := h.store.Snapshot().Outputs[0].ID

	h.apply(t,
		protocol.OutputGeometry{Target: at(out), Make: "Dell", Model: "U2720Q", PhysicalWidth: 600},
		protocol.OutputMode{Target: at(out), Flags: protocol.ModeCurrent, Width: 3840, Height: 2160, Refresh: 60000},
		protocol.OutputScale{Target: at(out), Factor: 2},
	)
	assert.False(t, h.store.Complete(store.ClassOutputs))

	h.apply(t, protocol.OutputDone{Target: at(out)})
	assert.True(t, h.store.Complete(store.ClassOutputs))

	o, _ := h.store.Output(out)
	assert.Equal(t, "Dell+U2720Q", o.DisplayName())
	assert.Equal(t, int32(2), o.Scale)
	require.Len(t, o.Modes, 1)
	assert.True(t, o.Modes[0].Current)
}

func TestForeignToplevelRequestsCosmicHandle(t *testing.T) {
	h := newHarness(t,
		global(1, protocol.ForeignToplevelList, 1),
		global(2, protocol.CosmicToplevelInfo, 3),
	)
	foreign := h.fake.NewServerObject(protocol.ForeignToplevelHandle, 1)
	list, _ := h.binder.Bound(protocol.ForeignToplevelList)

	h.apply(t, protocol.ForeignToplevelNew{Target: at(list.ID), Handle: foreign})

	calls := h.fake.Requests("get_cosmic_toplevel")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{foreign}, calls[0].Args)
	cosmic := calls[0].Created

	h.apply(t,
		protocol.ForeignToplevelIdentifier{Target: at(foreign), Identifier: "abc123"},
		protocol.CosmicToplevelTitle{Target: at(cosmic), Title: "Terminal"},
		protocol.CosmicToplevelState{Target: at(cosmic), States: []uint32{protocol.ToplevelStateActivated}},
	)

	snap := h.store.Snapshot()
	require.Len(t, snap.Toplevels, 1)
	tl := snap.Toplevels[0]
	assert.Equal(t, cosmic, tl.ID)
	assert.Equal(t, foreign, tl.ForeignHandle)
	assert.Equal(t, "abc123", tl.Identifier)
	assert.Equal(t, "Terminal", tl.Title)
	assert.Equal(t, store.StateActivated, tl.State)

	// state sets are replaced, not merged
	h.apply(t, protocol.CosmicToplevelState{Target: at(cosmic), States: []uint32{protocol.ToplevelStateMaximized}})
	tlp, _ := h.store.Toplevel(cosmic)
	assert.Equal(t, store.StateMaximized, tlp.State)

	h.apply(t, protocol.ForeignToplevelClosed{Target: at(foreign)})
	assert.Empty(t, h.store.Snapshot().Toplevels)

	// the cosmic handle's own closed event arrives late and is tolerated
	h.apply(t, protocol.CosmicToplevelClosed{Target: at(cosmic)})
}

func TestForeignToplevelWithoutCosmicInfo(t *testing.T) {
	h := newHarness(t, global(1, protocol.ForeignToplevelList, 1))
	foreign := h.fake.NewServerObject(protocol.ForeignToplevelHandle, 1)

	h.apply(t, protocol.ForeignToplevelNew{Handle: foreign})
	assert.Empty(t, h.fake.Calls())

	tl, ok := h.store.Toplevel(foreign)
	require.True(t, ok)
	assert.Equal(t, foreign, tl.ID)
}

func TestLegacyCosmicToplevel(t *testing.T) {
	h := newHarness(t)
	h.apply(t,
		protocol.CosmicToplevelNew{Handle: 40},
		protocol.CosmicToplevelAppID{Target: at(40), AppID: "firefox"},
	)
	tl, ok := h.store.Toplevel(40)
	require.True(t, ok)
	assert.Equal(t, wire.ObjectID(40), tl.CosmicHandle)
	assert.Equal(t, "firefox", tl.AppID)
}

func TestUnknownObjectIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.apply(t,
		protocol.WorkspaceName{Target: at(999), Name: "ghost"},
		protocol.OutputDone{Target: at(998)},
		protocol.CosmicToplevelState{Target: at(997), States: []uint32{1}},
	)
	assert.Empty(t, h.store.Snapshot().Workspaces)
}

func TestWorkspaceEvents(t *testing.T) {
	h := newHarness(t,
		global(1, protocol.WorkspaceManager, 1),
		global(2, protocol.CosmicWorkspaceManager, 2),
	)
	mgr, _ := h.binder.Bound(protocol.WorkspaceManager)
	group := h.fake.NewServerObject(protocol.WorkspaceGroupHandle, 1)
	ws := h.fake.NewServerObject(protocol.WorkspaceHandle, 1)

	h.apply(t,
		protocol.WorkspaceGroupNew{Target: at(mgr.ID), Handle: group},
		protocol.WorkspaceNew{Target: at(mgr.ID), Handle: ws},
		protocol.WorkspaceName{Target: at(ws), Name: "1"},
		protocol.WorkspaceState{Target: at(ws), State: protocol.WorkspaceStateActive},
		protocol.WorkspaceCapabilities{Target: at(ws), Capabilities: protocol.WorkspaceCapActivate | protocol.WorkspaceCapAssign},
		protocol.GroupWorkspaceEnter{Target: at(group), Workspace: ws},
		protocol.WorkspaceManagerDone{Target: at(mgr.ID)},
	)

	calls := h.fake.Requests("get_cosmic_workspace")
	require.Len(t, calls, 1)
	cosmic := calls[0].Created
	assert.False(t, h.store.Complete(store.ClassWorkspaces), "cosmic handle still outstanding")

	h.store.RoundtripStarted()
	h.apply(t,
		protocol.CosmicWorkspaceCapabilities{Target: at(cosmic), Capabilities: protocol.CosmicWorkspaceCapMove | protocol.CosmicWorkspaceCapPin},
		protocol.CosmicWorkspaceTilingState{Target: at(cosmic), State: protocol.TilingEnabled},
		protocol.CosmicWorkspaceState{Target: at(cosmic), State: protocol.CosmicWorkspaceStatePinned},
	)
	assert.True(t, h.store.Complete(store.ClassWorkspaces))

	w, ok := h.store.Workspace(ws)
	require.True(t, ok)
	assert.Equal(t, "1", w.Name)
	assert.True(t, w.State.Has(store.WorkspaceActive))
	assert.True(t, w.Pinned)
	assert.Equal(t, store.TilingEnabled, w.Tiling)
	caps := w.Capabilities()
	assert.True(t, caps.Has(store.CapMove))
	assert.True(t, caps.Has(store.CapPin))
	assert.True(t, caps.Has(store.CapActivate))
	assert.False(t, caps.Has(store.CapRename))
}

func TestVersionTooOldAbortsApply(t *testing.T) {
	h := newHarness(t)
	err := h.applier.Apply(global(5, protocol.CosmicToplevelInfo, 1))
	assert.Error(t, err)
}

func TestManagerCapabilities(t *testing.T) {
	h := newHarness(t)
	h.apply(t, protocol.ManagerCapabilities{Capabilities: []uint32{protocol.ManagerCapClose}})
	caps, ok := h.store.ManagerCapabilities()
	require.True(t, ok)
	assert.Equal(t, []uint32{protocol.ManagerCapClose}, caps)
}

func TestConversions(t *testing.T) {
	assert.Equal(t, store.StateFullscreen|store.StateSticky, ToplevelState([]uint32{3, 4, 99}))
	assert.Equal(t, store.WorkspaceHidden|store.WorkspaceUrgent, WorkspaceState(6))
	assert.Equal(t, store.TilingDisabled, Tiling(0))
	assert.Equal(t, store.TilingUnknown, Tiling(7))
}
