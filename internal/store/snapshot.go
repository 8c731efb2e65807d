package store

import (
	"maps"
	"slices"

	"github.com/grovetools/conductor/internal/wire"
)

// Snapshot is a read-only copy of the store. Each class is in creation
// order, so equal stores produce equal snapshots.
type Snapshot struct {
	Outputs    []Output
	Toplevels  []Toplevel
	Groups     []WorkspaceGroup
	Workspaces []Workspace
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Outputs:    make([]Output, 0, len(s.outputOrder)),
		Toplevels:  make([]Toplevel, 0, len(s.toplevelOrder)),
		Groups:     make([]WorkspaceGroup, 0, len(s.groupOrder)),
		Workspaces: make([]Workspace, 0, len(s.workspaceOrder)),
	}
	for _, id := range s.outputOrder {
		o := *s.outputs[id]
		o.Modes = slices.Clone(o.Modes)
		snap.Outputs = append(snap.Outputs, o)
	}
	for _, id := range s.toplevelOrder {
		t := *s.toplevels[id]
		t.Outputs = slices.Clone(t.Outputs)
		t.Workspaces = slices.Clone(t.Workspaces)
		t.Geometry = maps.Clone(t.Geometry)
		snap.Toplevels = append(snap.Toplevels, t)
	}
	for _, id := range s.groupOrder {
		g := *s.groups[id]
		g.Workspaces = slices.Clone(g.Workspaces)
		g.Outputs = slices.Clone(g.Outputs)
		snap.Groups = append(snap.Groups, g)
	}
	for _, id := range s.workspaceOrder {
		w := *s.workspaces[id]
		w.Coordinates = slices.Clone(w.Coordinates)
		snap.Workspaces = append(snap.Workspaces, w)
	}
	return snap
}

// Output returns the output with object id.
func (s Snapshot) Output(id wire.ObjectID) (Output, bool) {
	for _, o := range s.Outputs {
		if o.ID == id {
			return o, true
		}
	}
	return Output{}, false
}

// Workspace returns the workspace with primary identity id.
func (s Snapshot) Workspace(id wire.ObjectID) (Workspace, bool) {
	for _, w := range s.Workspaces {
		if w.ID == id {
			return w, true
		}
	}
	return Workspace{}, false
}

// GroupOf returns the group listing the workspace and its index there.
func (s Snapshot) GroupOf(ws wire.ObjectID) (WorkspaceGroup, int, bool) {
	for _, g := range s.Groups {
		if i := g.Index(ws); i >= 0 {
			return g, i, true
		}
	}
	return WorkspaceGroup{}, -1, false
}

// OutputNames returns the display names of the given outputs, skipping
// ids that are no longer known.
func (s Snapshot) OutputNames(ids []wire.ObjectID) []string {
	names := []string{}
	for _, id := range ids {
		if o, ok := s.Output(id); ok {
			names = append(names, o.DisplayName())
		}
	}
	return names
}
