// Package mutate issues typed mutation requests to the compositor after
// checking that the globals, handles and capabilities they need exist.
package mutate

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/registry"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/transport"
	"github.com/grovetools/conductor/internal/wire"
	"github.com/grovetools/conductor/logging"
)

// Axis is the direction argument of the cosmic move requests.
const Axis uint32 = 0

// Requester issues requests through a transport.
type Requester struct {
	transport transport.Transport
	binder    *registry.Binder
	store     *store.Store
	logger    *logrus.Entry
}

// New creates a Requester.
func New(t transport.Transport, b *registry.Binder, s *store.Store) *Requester {
	return &Requester{
		transport: t,
		binder:    b,
		store:     s,
		logger:    logging.NewLogger("mutate"),
	}
}

func (r *Requester) send(object wire.ObjectID, request string, args ...any) error {
	r.logger.WithFields(logrus.Fields{"object": object, "request": request}).Debug("Sending request")
	_, err := r.transport.Request(object, request, args...)
	return err
}

// global returns a bound global, failing when it never appeared, was
// removed, or is bound below the version request needs.
func (r *Requester) global(iface, request string) (registry.Handle, error) {
	h, err := r.binder.Lookup(iface)
	if err != nil {
		return h, err
	}
	table, _ := protocol.Lookup(iface)
	if _, sig, ok := table.Request(request); ok && sig.Since > h.Version {
		return h, conductorerrors.VersionTooOld(iface+"."+request, h.Version, sig.Since)
	}
	return h, nil
}

// Workspaces

func workspaceLabel(ws store.Workspace) string {
	return fmt.Sprintf("workspace '%s'", ws.Name)
}

func requireCap(ws store.Workspace, c store.Capability) error {
	if !ws.Capabilities().Has(c) {
		return conductorerrors.Unsupported(c.Name(), workspaceLabel(ws))
	}
	return nil
}

// cosmicWorkspace validates the cosmic side of a workspace request.
func (r *Requester) cosmicWorkspace(ws store.Workspace, c store.Capability) error {
	if _, err := r.global(protocol.CosmicWorkspaceManager, ""); err != nil {
		return err
	}
	if ws.CosmicHandle == 0 {
		return conductorerrors.ProtocolState("%s has no cosmic workspace handle", workspaceLabel(ws))
	}
	return requireCap(ws, c)
}

// MoveBefore stages moving ws directly before other.
func (r *Requester) MoveBefore(ws, other store.Workspace) error {
	if err := r.cosmicWorkspace(ws, store.CapMove); err != nil {
		return err
	}
	return r.send(ws.CosmicHandle, "move_before", other.ID, Axis)
}

// MoveAfter stages moving ws directly after other.
func (r *Requester) MoveAfter(ws, other store.Workspace) error {
	if err := r.cosmicWorkspace(ws, store.CapMove); err != nil {
		return err
	}
	return r.send(ws.CosmicHandle, "move_after", other.ID, Axis)
}

func (r *Requester) Pin(ws store.Workspace) error {
	if err := r.cosmicWorkspace(ws, store.CapPin); err != nil {
		return err
	}
	return r.send(ws.CosmicHandle, "pin")
}

func (r *Requester) Unpin(ws store.Workspace) error {
	if err := r.cosmicWorkspace(ws, store.CapPin); err != nil {
		return err
	}
	return r.send(ws.CosmicHandle, "unpin")
}

func (r *Requester) Rename(ws store.Workspace, name string) error {
	if err := r.cosmicWorkspace(ws, store.CapRename); err != nil {
		return err
	}
	return r.send(ws.CosmicHandle, "rename", name)
}

func (r *Requester) SetTiling(ws store.Workspace, enabled bool) error {
	if err := r.cosmicWorkspace(ws, store.CapSetTiling); err != nil {
		return err
	}
	state := protocol.TilingFloatingOnly
	if enabled {
		state = protocol.TilingEnabled
	}
	return r.send(ws.CosmicHandle, "set_tiling_state", state)
}

func (r *Requester) Activate(ws store.Workspace) error {
	if _, err := r.global(protocol.WorkspaceManager, "commit"); err != nil {
		return err
	}
	if err := requireCap(ws, store.CapActivate); err != nil {
		return err
	}
	return r.send(ws.ID, "activate")
}

func (r *Requester) Deactivate(ws store.Workspace) error {
	if _, err := r.global(protocol.WorkspaceManager, "commit"); err != nil {
		return err
	}
	if err := requireCap(ws, store.CapDeactivate); err != nil {
		return err
	}
	return r.send(ws.ID, "deactivate")
}

// Assign stages moving ws into group, used when group has no members
// to position against.
func (r *Requester) Assign(ws store.Workspace, group store.WorkspaceGroup) error {
	if _, err := r.global(protocol.WorkspaceManager, "commit"); err != nil {
		return err
	}
	if err := requireCap(ws, store.CapAssign); err != nil {
		return err
	}
	return r.send(ws.ID, "assign", group.ID)
}

// Commit applies every staged workspace request atomically.
func (r *Requester) Commit() error {
	h, err := r.global(protocol.WorkspaceManager, "commit")
	if err != nil {
		return err
	}
	return r.send(h.ID, "commit")
}

// Toplevels

func toplevelLabel(tl store.Toplevel) string {
	return fmt.Sprintf("toplevel '%s'", tl.Identifier)
}

// manager validates a toplevel manager request and returns the handle.
func (r *Requester) manager(tl store.Toplevel, request string, capability uint32, operation string) (registry.Handle, error) {
	h, err := r.global(protocol.CosmicToplevelManager, request)
	if err != nil {
		return h, err
	}
	if caps, ok := r.store.ManagerCapabilities(); ok && !slices.Contains(caps, capability) {
		return h, conductorerrors.Unsupported(operation, "the toplevel manager")
	}
	if tl.CosmicHandle == 0 {
		return h, conductorerrors.ProtocolState("%s has no cosmic toplevel handle", toplevelLabel(tl))
	}
	return h, nil
}

type stateRequests struct {
	set, unset string
	capability uint32
	operation  string
}

var stateTable = map[store.ToplevelState]stateRequests{
	store.StateMaximized:  {"set_maximized", "unset_maximized", protocol.ManagerCapMaximize, "maximize"},
	store.StateMinimized:  {"set_minimized", "unset_minimized", protocol.ManagerCapMinimize, "minimize"},
	store.StateFullscreen: {"set_fullscreen", "unset_fullscreen", protocol.ManagerCapFullscreen, "fullscreen"},
	store.StateSticky:     {"set_sticky", "unset_sticky", protocol.ManagerCapSticky, "sticky"},
}

// SetState sets or clears one window state flag. Fullscreen is
// requested without a preferred output.
func (r *Requester) SetState(tl store.Toplevel, flag store.ToplevelState, on bool) error {
	reqs, ok := stateTable[flag]
	if !ok {
		return conductorerrors.InvalidInput("state %v cannot be changed", flag.Names())
	}
	request := reqs.unset
	if on {
		request = reqs.set
	}
	h, err := r.manager(tl, request, reqs.capability, reqs.operation)
	if err != nil {
		return err
	}
	if request == "set_fullscreen" {
		return r.send(h.ID, request, tl.CosmicHandle, wire.ObjectID(0))
	}
	return r.send(h.ID, request, tl.CosmicHandle)
}

// ActivateToplevel focuses the window on the first seat.
func (r *Requester) ActivateToplevel(tl store.Toplevel) error {
	h, err := r.manager(tl, "activate", protocol.ManagerCapActivate, "activate")
	if err != nil {
		return err
	}
	seat, err := r.binder.Lookup(protocol.Seat)
	if err != nil {
		return err
	}
	return r.send(h.ID, "activate", tl.CosmicHandle, seat.ID)
}

// CloseToplevel asks the window to close.
func (r *Requester) CloseToplevel(tl store.Toplevel) error {
	h, err := r.manager(tl, "close", protocol.ManagerCapClose, "close")
	if err != nil {
		return err
	}
	return r.send(h.ID, "close", tl.CosmicHandle)
}

// MoveToWorkspace moves the window to ws shown on output.
func (r *Requester) MoveToWorkspace(tl store.Toplevel, ws store.Workspace, output wire.ObjectID) error {
	h, err := r.manager(tl, "move_to_ext_workspace", protocol.ManagerCapMoveToWorkspace, "move to workspace")
	if err != nil {
		return err
	}
	if output == 0 {
		return conductorerrors.ProtocolState("%s is not shown on any output", workspaceLabel(ws))
	}
	return r.send(h.ID, "move_to_ext_workspace", tl.CosmicHandle, ws.ID, output)
}
