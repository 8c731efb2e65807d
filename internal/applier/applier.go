// Package applier turns typed compositor events into store mutations.
package applier

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/registry"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/transport"
	"github.com/grovetools/conductor/internal/wire"
	"github.com/grovetools/conductor/logging"
)

// Applier applies events to a store. Events addressed to objects the
// store does not know are discarded with a logged anomaly.
type Applier struct {
	store     *store.Store
	binder    *registry.Binder
	transport transport.Transport
	logger    *logrus.Entry
}

// New creates an Applier. The transport is used to request secondary
// handles when new toplevels and workspaces appear.
func New(t transport.Transport, s *store.Store, b *registry.Binder) *Applier {
	return &Applier{
		store:     s,
		binder:    b,
		transport: t,
		logger:    logging.NewLogger("applier"),
	}
}

// Apply applies one event. It is installed as the transport handler.
func (a *Applier) Apply(ev protocol.Event) error {
	s := a.store

	switch e := ev.(type) {
	// registry
	case protocol.RegistryGlobal:
		return a.binder.Global(e)
	case protocol.RegistryGlobalRemove:
		a.binder.GlobalRemove(e)

	// outputs
	case protocol.OutputGeometry:
		if o, ok := lookup(a, ev, s.Output); ok {
			o.X, o.Y = e.X, e.Y
			o.PhysicalWidth, o.PhysicalHeight = e.PhysicalWidth, e.PhysicalHeight
			o.Make, o.Model = e.Make, e.Model
			o.Transform = e.Transform
		}
	case protocol.OutputMode:
		a.check(ev, s.UpsertMode(e.Object, store.Mode{
			Width:     e.Width,
			Height:    e.Height,
			Refresh:   e.Refresh,
			Current:   e.Flags&protocol.ModeCurrent != 0,
			Preferred: e.Flags&protocol.ModePreferred != 0,
		}))
	case protocol.OutputScale:
		if o, ok := lookup(a, ev, s.Output); ok {
			o.Scale = e.Factor
		}
	case protocol.OutputName:
		if o, ok := lookup(a, ev, s.Output); ok {
			o.Name = e.Name
		}
	case protocol.OutputDescription:
		if o, ok := lookup(a, ev, s.Output); ok {
			o.Description = e.Description
		}
	case protocol.OutputDone:
		if o, ok := lookup(a, ev, s.Output); ok {
			o.Settled = true
		}

	// toplevels
	case protocol.ForeignToplevelNew:
		return a.foreignToplevel(e)
	case protocol.CosmicToplevelNew:
		s.AddToplevel(e.Handle, false)
	case protocol.CosmicInfoDone:
		s.MarkToplevelsDone()
	case protocol.ForeignToplevelClosed, protocol.CosmicToplevelClosed:
		a.check(ev, s.RemoveToplevel(e.Source()))
	case protocol.ForeignToplevelTitle:
		if t, ok := lookup(a, ev, s.Toplevel); ok {
			t.Title = e.Title
		}
	case protocol.CosmicToplevelTitle:
		if t, ok := lookup(a, ev, s.Toplevel); ok {
			t.Title = e.Title
		}
	case protocol.ForeignToplevelAppID:
		if t, ok := lookup(a, ev, s.Toplevel); ok {
			t.AppID = e.AppID
		}
	case protocol.CosmicToplevelAppID:
		if t, ok := lookup(a, ev, s.Toplevel); ok {
			t.AppID = e.AppID
		}
	case protocol.ForeignToplevelIdentifier:
		if t, ok := lookup(a, ev, s.Toplevel); ok {
			t.Identifier = e.Identifier
		}
	case protocol.CosmicToplevelOutputEnter:
		a.check(ev, s.ToplevelEnterOutput(e.Object, e.Output))
	case protocol.CosmicToplevelOutputLeave:
		a.check(ev, s.ToplevelLeaveOutput(e.Object, e.Output))
	case protocol.CosmicToplevelExtWorkspaceEnter:
		a.check(ev, s.ToplevelEnterWorkspace(e.Object, e.Workspace))
	case protocol.CosmicToplevelExtWorkspaceLeave:
		a.check(ev, s.ToplevelLeaveWorkspace(e.Object, e.Workspace))
	case protocol.CosmicToplevelState:
		a.check(ev, s.SetToplevelState(e.Object, ToplevelState(e.States)))
	case protocol.CosmicToplevelGeometry:
		if t, ok := lookup(a, ev, s.Toplevel); ok {
			t.Geometry[e.Output] = store.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
		}
	case protocol.ManagerCapabilities:
		s.SetManagerCapabilities(e.Capabilities)

	// workspace groups
	case protocol.WorkspaceGroupNew:
		s.AddGroup(e.Handle)
	case protocol.GroupCapabilities:
		if g, ok := lookup(a, ev, s.Group); ok {
			g.Capabilities = e.Capabilities
		}
	case protocol.GroupOutputEnter:
		a.check(ev, s.GroupEnterOutput(e.Object, e.Output))
	case protocol.GroupOutputLeave:
		a.check(ev, s.GroupLeaveOutput(e.Object, e.Output))
	case protocol.GroupWorkspaceEnter:
		a.check(ev, s.GroupEnterWorkspace(e.Object, e.Workspace))
	case protocol.GroupWorkspaceLeave:
		a.check(ev, s.GroupLeaveWorkspace(e.Object, e.Workspace))
	case protocol.GroupRemoved:
		a.check(ev, s.RemoveGroup(e.Object))

	// workspaces
	case protocol.WorkspaceNew:
		return a.workspace(e)
	case protocol.WorkspaceManagerDone:
		s.MarkWorkspacesDone()
	case protocol.WorkspaceID:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.WorkspaceID = e.ID
		}
	case protocol.WorkspaceName:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.Name = e.Name
		}
	case protocol.WorkspaceCoordinates:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.Coordinates = e.Coordinates
		}
	case protocol.WorkspaceState:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.State = WorkspaceState(e.State)
		}
	case protocol.WorkspaceCapabilities:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.ExtCapabilities = ExtCapabilities(e.Capabilities)
		}
	case protocol.WorkspaceRemoved:
		a.check(ev, s.RemoveWorkspace(e.Object))
	case protocol.CosmicWorkspaceCapabilities:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.CosmicCapabilities = CosmicCapabilities(e.Capabilities)
		}
	case protocol.CosmicWorkspaceTilingState:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.Tiling = Tiling(e.State)
		}
	case protocol.CosmicWorkspaceState:
		if w, ok := lookup(a, ev, s.Workspace); ok {
			w.Pinned = e.State&protocol.CosmicWorkspaceStatePinned != 0
		}

	default:
		a.logger.WithField("event", fmt.Sprintf("%T", ev)).Debug("Ignoring event")
	}
	return nil
}

// foreignToplevel creates the toplevel and, when the cosmic info global
// can provide it, requests the cosmic handle for the same window.
func (a *Applier) foreignToplevel(e protocol.ForeignToplevelNew) error {
	a.store.AddToplevel(e.Handle, true)

	info, ok := a.binder.Bound(protocol.CosmicToplevelInfo)
	if !ok || info.Version < 2 {
		return nil
	}
	cosmic, err := a.transport.Request(info.ID, "get_cosmic_toplevel", e.Handle)
	if err != nil {
		return err
	}
	a.store.AttachCosmicToplevel(e.Handle, cosmic)
	return nil
}

func (a *Applier) workspace(e protocol.WorkspaceNew) error {
	a.store.AddWorkspace(e.Handle)

	mgr, ok := a.binder.Bound(protocol.CosmicWorkspaceManager)
	if !ok {
		return nil
	}
	cosmic, err := a.transport.Request(mgr.ID, "get_cosmic_workspace", e.Handle)
	if err != nil {
		return err
	}
	a.store.AttachCosmicWorkspace(e.Handle, cosmic)
	return nil
}

// lookup finds the entity an event is addressed to, logging the anomaly
// when it is unknown.
func lookup[T any](a *Applier, ev protocol.Event, find func(wire.ObjectID) (T, bool)) (T, bool) {
	v, ok := find(ev.Source())
	a.check(ev, ok)
	return v, ok
}

func (a *Applier) check(ev protocol.Event, ok bool) {
	if ok {
		return
	}
	entry := a.logger.WithFields(logrus.Fields{
		"anomaly": "unknown_object",
		"object":  ev.Source(),
		"event":   fmt.Sprintf("%T", ev),
	})
	if a.store.Retired(ev.Source()) {
		entry.Debug("Discarding event for removed object")
		return
	}
	entry.Warn("Discarding event for unknown object")
}
