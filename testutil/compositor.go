package testutil

import (
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/wire"
)

// Output describes a monitor served by Compositor.
type Output struct {
	Name, Description string
	Make, Model       string
	X, Y              int32
	Width, Height     int32
	Refresh           int32
	Scale             int32
}

// Workspace describes one workspace of a Group.
type Workspace struct {
	Name         string
	ID           string
	Coordinates  []uint32
	State        uint32
	Capabilities uint32
	// CosmicCapabilities, Tiling and Pinned are served through the
	// cosmic workspace extension.
	CosmicCapabilities uint32
	Tiling             uint32
	Pinned             bool
}

// Group is a workspace group shown on one output.
type Group struct {
	Output       string
	Capabilities uint32
	Workspaces   []Workspace
}

// Toplevel describes one window.
type Toplevel struct {
	Identifier string
	Title      string
	AppID      string
	Output     string
	Workspace  string
	States     []uint32
}

// Compositor is a FakeTransport that behaves like a COSMIC session: it
// advertises globals on the first round-trip, answers binds with the
// initial state burst and answers secondary-handle requests.
type Compositor struct {
	*FakeTransport

	Outputs   []Output
	Groups    []Group
	Toplevels []Toplevel

	// Versions overrides advertised global versions; a zero entry
	// withholds the global.
	Versions    map[string]uint32
	ManagerCaps []uint32

	started    bool
	outputIDs  map[string]wire.ObjectID
	groupIDs   []wire.ObjectID
	wsIDs      [][]wire.ObjectID
	foreignIDs []wire.ObjectID
	infoID     wire.ObjectID
}

// DefaultVersions are the versions advertised when Versions is nil.
var DefaultVersions = map[string]uint32{
	protocol.Output:                 4,
	protocol.Seat:                   9,
	protocol.ForeignToplevelList:    1,
	protocol.CosmicToplevelInfo:     3,
	protocol.CosmicToplevelManager:  4,
	protocol.WorkspaceManager:       1,
	protocol.CosmicWorkspaceManager: 2,
	"wl_compositor":                 6,
}

// NewCompositor returns an empty session.
func NewCompositor() *Compositor {
	c := &Compositor{
		FakeTransport: NewFakeTransport(),
		outputIDs:     make(map[string]wire.ObjectID),
		ManagerCaps: []uint32{
			protocol.ManagerCapClose, protocol.ManagerCapActivate, protocol.ManagerCapMaximize,
			protocol.ManagerCapMinimize, protocol.ManagerCapFullscreen,
			protocol.ManagerCapMoveToWorkspace, protocol.ManagerCapSticky,
		},
	}
	c.OnBind = c.bound
	c.OnRequest = c.requested
	return c
}

// Roundtrip advertises the globals on first use, then dispatches.
func (c *Compositor) Roundtrip() (int, error) {
	if !c.started {
		c.start()
	}
	return c.FakeTransport.Roundtrip()
}

// WorkspaceHandle returns the ext handle of a workspace by group index
// and name.
func (c *Compositor) WorkspaceHandle(group int, name string) wire.ObjectID {
	for i, ws := range c.Groups[group].Workspaces {
		if ws.Name == name {
			return c.wsIDs[group][i]
		}
	}
	return 0
}

// GroupHandle returns the handle of a group by index.
func (c *Compositor) GroupHandle(group int) wire.ObjectID { return c.groupIDs[group] }

// OutputHandle returns the bound wl_output for an output name.
func (c *Compositor) OutputHandle(name string) wire.ObjectID { return c.outputIDs[name] }

func (c *Compositor) versions() map[string]uint32 {
	if c.Versions != nil {
		return c.Versions
	}
	return DefaultVersions
}

func (c *Compositor) start() {
	c.started = true

	for gi, g := range c.Groups {
		c.groupIDs = append(c.groupIDs, c.NewServerObject(protocol.WorkspaceGroupHandle, 1))
		c.wsIDs = append(c.wsIDs, nil)
		for range g.Workspaces {
			c.wsIDs[gi] = append(c.wsIDs[gi], c.NewServerObject(protocol.WorkspaceHandle, 1))
		}
	}
	for range c.Toplevels {
		c.foreignIDs = append(c.foreignIDs, c.NewServerObject(protocol.ForeignToplevelHandle, 1))
	}

	name := uint32(1)
	global := func(iface string, version uint32) {
		c.Emit(protocol.RegistryGlobal{Target: protocol.Target{Object: RegistryID}, Name: name, Interface: iface, Version: version})
		name++
	}
	v := c.versions()
	for range c.Outputs {
		if v[protocol.Output] != 0 {
			global(protocol.Output, v[protocol.Output])
		}
	}
	for _, iface := range []string{
		"wl_compositor",
		protocol.Seat,
		protocol.ForeignToplevelList,
		protocol.CosmicToplevelInfo,
		protocol.CosmicToplevelManager,
		protocol.WorkspaceManager,
		protocol.CosmicWorkspaceManager,
	} {
		if v[iface] != 0 {
			global(iface, v[iface])
		}
	}
}

func at(id wire.ObjectID) protocol.Target { return protocol.Target{Object: id} }

func (c *Compositor) bound(b BindCall) {
	switch b.Interface {
	case protocol.Output:
		c.bindOutput(b)
	case protocol.ForeignToplevelList:
		c.bindForeignList(b)
	case protocol.CosmicToplevelInfo:
		c.infoID = b.ID
		if b.Version >= 2 {
			c.Emit(protocol.CosmicInfoDone{Target: at(b.ID)})
		}
	case protocol.CosmicToplevelManager:
		c.Emit(protocol.ManagerCapabilities{Target: at(b.ID), Capabilities: c.ManagerCaps})
	case protocol.WorkspaceManager:
		c.bindWorkspaceManager(b)
	}
}

func (c *Compositor) bindOutput(b BindCall) {
	// outputs are bound in advertisement order
	o := c.Outputs[len(c.outputIDs)]
	key := o.Name
	if key == "" {
		key = o.Make + "+" + o.Model
	}
	c.outputIDs[key] = b.ID

	t := at(b.ID)
	c.Emit(
		protocol.OutputGeometry{Target: t, X: o.X, Y: o.Y, PhysicalWidth: 600, PhysicalHeight: 340, Make: o.Make, Model: o.Model},
		protocol.OutputMode{Target: t, Flags: protocol.ModeCurrent | protocol.ModePreferred, Width: o.Width, Height: o.Height, Refresh: o.Refresh},
		protocol.OutputScale{Target: t, Factor: max(o.Scale, 1)},
	)
	if b.Version >= 4 {
		if o.Name != "" {
			c.Emit(protocol.OutputName{Target: t, Name: o.Name})
		}
		if o.Description != "" {
			c.Emit(protocol.OutputDescription{Target: t, Description: o.Description})
		}
	}
	c.Emit(protocol.OutputDone{Target: t})
}

func (c *Compositor) bindForeignList(b BindCall) {
	for i, tl := range c.Toplevels {
		h := c.foreignIDs[i]
		t := at(h)
		c.Emit(
			protocol.ForeignToplevelNew{Target: at(b.ID), Handle: h},
			protocol.ForeignToplevelTitle{Target: t, Title: tl.Title},
			protocol.ForeignToplevelAppID{Target: t, AppID: tl.AppID},
			protocol.ForeignToplevelIdentifier{Target: t, Identifier: tl.Identifier},
			protocol.ForeignToplevelDone{Target: t},
		)
	}
}

func (c *Compositor) bindWorkspaceManager(b BindCall) {
	mgr := at(b.ID)
	for gi, g := range c.Groups {
		gid := c.groupIDs[gi]
		c.Emit(
			protocol.WorkspaceGroupNew{Target: mgr, Handle: gid},
			protocol.GroupCapabilities{Target: at(gid), Capabilities: g.Capabilities},
		)
		if out, ok := c.outputIDs[g.Output]; ok {
			c.Emit(protocol.GroupOutputEnter{Target: at(gid), Output: out})
		}
		for wi, ws := range g.Workspaces {
			wid := c.wsIDs[gi][wi]
			t := at(wid)
			c.Emit(
				protocol.WorkspaceNew{Target: mgr, Handle: wid},
				protocol.WorkspaceID{Target: t, ID: ws.ID},
				protocol.WorkspaceName{Target: t, Name: ws.Name},
				protocol.WorkspaceCoordinates{Target: t, Coordinates: ws.Coordinates},
				protocol.WorkspaceState{Target: t, State: ws.State},
				protocol.WorkspaceCapabilities{Target: t, Capabilities: ws.Capabilities},
				protocol.GroupWorkspaceEnter{Target: at(gid), Workspace: wid},
			)
		}
	}
	c.Emit(protocol.WorkspaceManagerDone{Target: mgr})
}

func (c *Compositor) requested(call Call) {
	switch call.Request {
	case "get_cosmic_toplevel":
		c.cosmicToplevel(call)
	case "get_cosmic_workspace":
		c.cosmicWorkspace(call)
	}
}

func (c *Compositor) cosmicToplevel(call Call) {
	foreign := call.Args[0].(wire.ObjectID)
	for i, h := range c.foreignIDs {
		if h != foreign {
			continue
		}
		tl := c.Toplevels[i]
		t := at(call.Created)
		c.Emit(
			protocol.CosmicToplevelTitle{Target: t, Title: tl.Title},
			protocol.CosmicToplevelAppID{Target: t, AppID: tl.AppID},
		)
		if out, ok := c.outputIDs[tl.Output]; ok {
			c.Emit(protocol.CosmicToplevelOutputEnter{Target: t, Output: out})
		}
		if c.Version(call.Created) >= 3 {
			if ws := c.findWorkspace(tl.Workspace); ws != 0 {
				c.Emit(protocol.CosmicToplevelExtWorkspaceEnter{Target: t, Workspace: ws})
			}
		}
		c.Emit(
			protocol.CosmicToplevelState{Target: t, States: tl.States},
			protocol.CosmicToplevelDone{Target: t},
			protocol.CosmicInfoDone{Target: at(c.infoID)},
		)
	}
}

func (c *Compositor) cosmicWorkspace(call Call) {
	ext := call.Args[0].(wire.ObjectID)
	for gi := range c.wsIDs {
		for wi, id := range c.wsIDs[gi] {
			if id != ext {
				continue
			}
			ws := c.Groups[gi].Workspaces[wi]
			t := at(call.Created)
			c.Emit(
				protocol.CosmicWorkspaceCapabilities{Target: t, Capabilities: ws.CosmicCapabilities},
				protocol.CosmicWorkspaceTilingState{Target: t, State: ws.Tiling},
			)
			if c.Version(call.Created) >= 2 {
				var state uint32
				if ws.Pinned {
					state = protocol.CosmicWorkspaceStatePinned
				}
				c.Emit(protocol.CosmicWorkspaceState{Target: t, State: state})
			}
		}
	}
}

func (c *Compositor) findWorkspace(name string) wire.ObjectID {
	for gi, g := range c.Groups {
		for wi, ws := range g.Workspaces {
			if ws.Name == name {
				return c.wsIDs[gi][wi]
			}
		}
	}
	return 0
}
