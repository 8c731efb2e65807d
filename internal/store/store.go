// Package store holds the mirrored compositor state: outputs, toplevels,
// workspace groups and workspaces, keyed by protocol object identity.
package store

import (
	"slices"

	"github.com/grovetools/conductor/internal/wire"
)

// Store is the in-memory mirror of compositor state.
//
// It is owned by a single goroutine: mutated while a round-trip
// dispatches events and read between round-trips.
type Store struct {
	outputs    map[wire.ObjectID]*Output
	toplevels  map[wire.ObjectID]*Toplevel
	groups     map[wire.ObjectID]*WorkspaceGroup
	workspaces map[wire.ObjectID]*Workspace

	// creation order per class
	outputOrder    []wire.ObjectID
	toplevelOrder  []wire.ObjectID
	groupOrder     []wire.ObjectID
	workspaceOrder []wire.ObjectID

	// secondary identity -> primary identity
	secondary map[wire.ObjectID]wire.ObjectID
	// identities whose entity has been removed
	retired map[wire.ObjectID]struct{}

	managerCaps    []uint32
	managerCapsSet bool

	toplevelsDone    bool
	workspacesDone   bool
	secondaryPending int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		outputs:    make(map[wire.ObjectID]*Output),
		toplevels:  make(map[wire.ObjectID]*Toplevel),
		groups:     make(map[wire.ObjectID]*WorkspaceGroup),
		workspaces: make(map[wire.ObjectID]*Workspace),
		secondary:  make(map[wire.ObjectID]wire.ObjectID),
		retired:    make(map[wire.ObjectID]struct{}),
	}
}

func (s *Store) primary(id wire.ObjectID) wire.ObjectID {
	if p, ok := s.secondary[id]; ok {
		return p
	}
	return id
}

// Retired reports whether id belonged to an entity that has since been
// removed. Late events for retired identities are expected.
func (s *Store) Retired(id wire.ObjectID) bool {
	_, ok := s.retired[id]
	return ok
}

func (s *Store) retire(ids ...wire.ObjectID) {
	for _, id := range ids {
		if id != 0 {
			s.retired[id] = struct{}{}
			delete(s.secondary, id)
		}
	}
}

// Outputs

// AddOutput creates an output record for a freshly bound wl_output.
func (s *Store) AddOutput(id wire.ObjectID, globalName uint32) *Output {
	o := &Output{ID: id, GlobalName: globalName}
	s.outputs[id] = o
	s.outputOrder = append(s.outputOrder, id)
	return o
}

// Output returns the output with the given object id.
func (s *Store) Output(id wire.ObjectID) (*Output, bool) {
	o, ok := s.outputs[id]
	return o, ok
}

// OutputByGlobal returns the output bound from a registry global.
func (s *Store) OutputByGlobal(name uint32) (*Output, bool) {
	for _, id := range s.outputOrder {
		if o := s.outputs[id]; o.GlobalName == name {
			return o, true
		}
	}
	return nil, false
}

// UpsertMode records a mode. A mode with the same dimensions and
// refresh rate is replaced in place.
func (s *Store) UpsertMode(id wire.ObjectID, m Mode) bool {
	o, ok := s.outputs[id]
	if !ok {
		return false
	}
	if m.Current {
		for i := range o.Modes {
			o.Modes[i].Current = false
		}
	}
	for i, existing := range o.Modes {
		if existing.Width == m.Width && existing.Height == m.Height && existing.Refresh == m.Refresh {
			o.Modes[i] = m
			return true
		}
	}
	o.Modes = append(o.Modes, m)
	return true
}

// RemoveOutput erases an output and every reference to it.
func (s *Store) RemoveOutput(id wire.ObjectID) bool {
	if _, ok := s.outputs[id]; !ok {
		return false
	}
	delete(s.outputs, id)
	s.outputOrder = remove(s.outputOrder, id)
	for _, g := range s.groups {
		g.Outputs = remove(g.Outputs, id)
	}
	for _, t := range s.toplevels {
		t.Outputs = remove(t.Outputs, id)
		delete(t.Geometry, id)
	}
	s.retire(id)
	return true
}

// Toplevels

// AddToplevel creates a toplevel whose primary identity is id. foreign
// marks id as an ext_foreign_toplevel handle rather than a cosmic one.
func (s *Store) AddToplevel(id wire.ObjectID, foreign bool) *Toplevel {
	t := &Toplevel{ID: id, Geometry: make(map[wire.ObjectID]Rect)}
	if foreign {
		t.ForeignHandle = id
	} else {
		t.CosmicHandle = id
	}
	s.toplevels[id] = t
	s.toplevelOrder = append(s.toplevelOrder, id)
	return t
}

// AttachCosmicToplevel makes cosmic the primary identity of the toplevel
// known by its foreign handle. The foreign handle stays addressable
// through the secondary index.
func (s *Store) AttachCosmicToplevel(foreign, cosmic wire.ObjectID) bool {
	t, ok := s.toplevels[s.primary(foreign)]
	if !ok {
		return false
	}
	old := t.ID
	delete(s.toplevels, old)
	t.ID = cosmic
	t.CosmicHandle = cosmic
	s.toplevels[cosmic] = t
	s.secondary[foreign] = cosmic
	if i := slices.Index(s.toplevelOrder, old); i >= 0 {
		s.toplevelOrder[i] = cosmic
	}
	s.secondaryPending++
	return true
}

// Toplevel returns the toplevel reachable through either identity.
func (s *Store) Toplevel(id wire.ObjectID) (*Toplevel, bool) {
	t, ok := s.toplevels[s.primary(id)]
	return t, ok
}

// SetToplevelState replaces the state flags wholesale.
func (s *Store) SetToplevelState(id wire.ObjectID, state ToplevelState) bool {
	t, ok := s.Toplevel(id)
	if ok {
		t.State = state
	}
	return ok
}

// ToplevelEnterOutput adds output to the toplevel's output set.
func (s *Store) ToplevelEnterOutput(id, output wire.ObjectID) bool {
	t, ok := s.Toplevel(id)
	if ok && !slices.Contains(t.Outputs, output) {
		t.Outputs = append(t.Outputs, output)
	}
	return ok
}

func (s *Store) ToplevelLeaveOutput(id, output wire.ObjectID) bool {
	t, ok := s.Toplevel(id)
	if ok {
		t.Outputs = remove(t.Outputs, output)
		delete(t.Geometry, output)
	}
	return ok
}

func (s *Store) ToplevelEnterWorkspace(id, ws wire.ObjectID) bool {
	t, ok := s.Toplevel(id)
	if ok && !slices.Contains(t.Workspaces, ws) {
		t.Workspaces = append(t.Workspaces, ws)
	}
	return ok
}

func (s *Store) ToplevelLeaveWorkspace(id, ws wire.ObjectID) bool {
	t, ok := s.Toplevel(id)
	if ok {
		t.Workspaces = remove(t.Workspaces, ws)
	}
	return ok
}

// RemoveToplevel erases the toplevel reachable through id.
func (s *Store) RemoveToplevel(id wire.ObjectID) bool {
	t, ok := s.Toplevel(id)
	if !ok {
		return false
	}
	delete(s.toplevels, t.ID)
	s.toplevelOrder = remove(s.toplevelOrder, t.ID)
	s.retire(t.ID, t.CosmicHandle, t.ForeignHandle)
	return true
}

// Workspace groups

func (s *Store) AddGroup(id wire.ObjectID) *WorkspaceGroup {
	g := &WorkspaceGroup{ID: id}
	s.groups[id] = g
	s.groupOrder = append(s.groupOrder, id)
	return g
}

func (s *Store) Group(id wire.ObjectID) (*WorkspaceGroup, bool) {
	g, ok := s.groups[id]
	return g, ok
}

func (s *Store) GroupEnterOutput(id, output wire.ObjectID) bool {
	g, ok := s.groups[id]
	if ok && !slices.Contains(g.Outputs, output) {
		g.Outputs = append(g.Outputs, output)
	}
	return ok
}

func (s *Store) GroupLeaveOutput(id, output wire.ObjectID) bool {
	g, ok := s.groups[id]
	if ok {
		g.Outputs = remove(g.Outputs, output)
	}
	return ok
}

// GroupEnterWorkspace appends ws to the group's member list and removes
// it from any other group, so a workspace is never in two groups.
// Re-entering the same group keeps the existing position.
func (s *Store) GroupEnterWorkspace(id, ws wire.ObjectID) bool {
	g, ok := s.groups[id]
	if !ok {
		return false
	}
	ws = s.primary(ws)
	for _, other := range s.groups {
		if other.ID != id {
			other.Workspaces = remove(other.Workspaces, ws)
		}
	}
	if !slices.Contains(g.Workspaces, ws) {
		g.Workspaces = append(g.Workspaces, ws)
	}
	return true
}

func (s *Store) GroupLeaveWorkspace(id, ws wire.ObjectID) bool {
	g, ok := s.groups[id]
	if ok {
		g.Workspaces = remove(g.Workspaces, s.primary(ws))
	}
	return ok
}

func (s *Store) RemoveGroup(id wire.ObjectID) bool {
	if _, ok := s.groups[id]; !ok {
		return false
	}
	delete(s.groups, id)
	s.groupOrder = remove(s.groupOrder, id)
	s.retire(id)
	return true
}

// Workspaces

func (s *Store) AddWorkspace(id wire.ObjectID) *Workspace {
	w := &Workspace{ID: id}
	s.workspaces[id] = w
	s.workspaceOrder = append(s.workspaceOrder, id)
	return w
}

// AttachCosmicWorkspace records cosmic as the secondary identity of the
// ext workspace ext.
func (s *Store) AttachCosmicWorkspace(ext, cosmic wire.ObjectID) bool {
	w, ok := s.workspaces[ext]
	if !ok {
		return false
	}
	w.CosmicHandle = cosmic
	s.secondary[cosmic] = ext
	s.secondaryPending++
	return true
}

// Workspace returns the workspace reachable through either identity.
func (s *Store) Workspace(id wire.ObjectID) (*Workspace, bool) {
	w, ok := s.workspaces[s.primary(id)]
	return w, ok
}

// GroupOf returns the group listing the workspace and its index there.
func (s *Store) GroupOf(ws wire.ObjectID) (*WorkspaceGroup, int, bool) {
	ws = s.primary(ws)
	for _, id := range s.groupOrder {
		g := s.groups[id]
		if i := g.Index(ws); i >= 0 {
			return g, i, true
		}
	}
	return nil, -1, false
}

func (s *Store) RemoveWorkspace(id wire.ObjectID) bool {
	w, ok := s.Workspace(id)
	if !ok {
		return false
	}
	delete(s.workspaces, w.ID)
	s.workspaceOrder = remove(s.workspaceOrder, w.ID)
	for _, g := range s.groups {
		g.Workspaces = remove(g.Workspaces, w.ID)
	}
	for _, t := range s.toplevels {
		t.Workspaces = remove(t.Workspaces, w.ID)
	}
	s.retire(w.ID, w.CosmicHandle)
	return true
}

// SetManagerCapabilities records the toplevel manager's advertised
// capability list.
func (s *Store) SetManagerCapabilities(caps []uint32) {
	s.managerCaps = slices.Clone(caps)
	s.managerCapsSet = true
}

// ManagerCapabilities returns the toplevel manager's capabilities and
// whether they have been received.
func (s *Store) ManagerCapabilities() ([]uint32, bool) {
	return s.managerCaps, s.managerCapsSet
}

// Completeness

// MarkToplevelsDone records the terminal event of the toplevel listing.
func (s *Store) MarkToplevelsDone() { s.toplevelsDone = true }

// MarkWorkspacesDone records the workspace manager's done event.
func (s *Store) MarkWorkspacesDone() { s.workspacesDone = true }

// RoundtripStarted resets the count of secondary-handle requests issued
// during the previous round-trip. The engine calls it before every
// round-trip.
func (s *Store) RoundtripStarted() { s.secondaryPending = 0 }

// Complete reports whether the mirrored state of class is usable.
func (s *Store) Complete(class Class) bool {
	switch class {
	case ClassOutputs:
		if len(s.outputs) == 0 {
			return false
		}
		for _, o := range s.outputs {
			if !o.Settled {
				return false
			}
		}
		return true
	case ClassToplevels:
		return s.toplevelsDone && s.secondaryPending == 0
	case ClassWorkspaces:
		return s.workspacesDone && s.secondaryPending == 0
	}
	return false
}

func remove(ids []wire.ObjectID, id wire.ObjectID) []wire.ObjectID {
	return slices.DeleteFunc(ids, func(v wire.ObjectID) bool { return v == id })
}
