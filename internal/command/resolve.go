package command

import (
	"strings"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/store"
)

// WorkspaceRef addresses a workspace by name, optionally narrowed to the
// group shown on a display.
type WorkspaceRef struct {
	Name    string
	Display string
}

// Resolved is a workspace together with its group and 0-based index in
// the group's member list.
type Resolved struct {
	Group     store.WorkspaceGroup
	Index     int
	Workspace store.Workspace
}

// ResolveOutput finds the output whose display name is display.
func ResolveOutput(snap store.Snapshot, display string) (store.Output, error) {
	for _, o := range snap.Outputs {
		if o.DisplayName() == display {
			return o, nil
		}
	}
	return store.Output{}, conductorerrors.UnknownDisplay(display)
}

// ResolveGroup finds the workspace group shown on display.
func ResolveGroup(snap store.Snapshot, display string) (store.WorkspaceGroup, error) {
	o, err := ResolveOutput(snap, display)
	if err != nil {
		return store.WorkspaceGroup{}, err
	}
	for _, g := range snap.Groups {
		for _, id := range g.Outputs {
			if id == o.ID {
				return g, nil
			}
		}
	}
	return store.WorkspaceGroup{}, conductorerrors.UnknownDisplay(display).
		WithDetail("reason", "no workspace group is shown on this display")
}

// ResolveWorkspace finds a workspace by name. Without a display the
// name must be unique across all groups.
func ResolveWorkspace(snap store.Snapshot, ref WorkspaceRef) (Resolved, error) {
	if ref.Display != "" {
		g, err := ResolveGroup(snap, ref.Display)
		if err != nil {
			return Resolved{}, err
		}
		for i, id := range g.Workspaces {
			if ws, ok := snap.Workspace(id); ok && ws.Name == ref.Name {
				return Resolved{Group: g, Index: i, Workspace: ws}, nil
			}
		}
		return Resolved{}, conductorerrors.NotFoundOnDisplay(ref.Name, ref.Display)
	}

	var matches []store.Workspace
	for _, ws := range snap.Workspaces {
		if ws.Name == ref.Name {
			matches = append(matches, ws)
		}
	}
	switch len(matches) {
	case 0:
		return Resolved{}, conductorerrors.NotFound("workspace", ref.Name)
	case 1:
	default:
		return Resolved{}, conductorerrors.Ambiguous("workspace", ref.Name, len(matches), "specify a display with --display")
	}

	g, idx, ok := snap.GroupOf(matches[0].ID)
	if !ok {
		return Resolved{}, conductorerrors.ProtocolState("workspace '%s' is not a member of any group", ref.Name)
	}
	return Resolved{Group: g, Index: idx, Workspace: matches[0]}, nil
}

// ResolveToplevel finds the single toplevel whose identifier starts
// with prefix.
func ResolveToplevel(snap store.Snapshot, prefix string) (store.Toplevel, error) {
	if prefix == "" {
		return store.Toplevel{}, conductorerrors.InvalidInput("toplevel identifier must not be empty")
	}
	var matches []store.Toplevel
	for _, tl := range snap.Toplevels {
		if strings.HasPrefix(tl.Identifier, prefix) {
			matches = append(matches, tl)
		}
	}
	switch len(matches) {
	case 0:
		return store.Toplevel{}, conductorerrors.NotFound("toplevel", prefix)
	case 1:
		return matches[0], nil
	}
	return store.Toplevel{}, conductorerrors.Ambiguous("toplevel", prefix, len(matches), "use a longer identifier prefix")
}
