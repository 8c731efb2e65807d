package command

import (
	"context"
	"slices"

	"github.com/moby/patternmatcher"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/wire"
)

// Filter narrows a toplevel listing. Workspace may be combined with
// Display to pick the workspace on that display; Display alone filters
// by output.
type Filter struct {
	Workspace string
	Display   string
	AppID     string
}

// Outputs lists the outputs.
func (l *Layer) Outputs(ctx context.Context) (store.Snapshot, error) {
	return l.prepare(ctx, classes(store.ClassOutputs))
}

// WorkspaceGroups lists the workspace groups with their workspaces. Output
// names are resolved when outputs are available.
func (l *Layer) WorkspaceGroups(ctx context.Context) (store.Snapshot, error) {
	return l.prepare(ctx, classes(store.ClassWorkspaces), store.ClassOutputs)
}

// Workspaces lists the workspaces.
func (l *Layer) Workspaces(ctx context.Context) (store.Snapshot, error) {
	return l.prepare(ctx, classes(store.ClassWorkspaces), store.ClassOutputs)
}

// Toplevels lists the toplevels matching f. The returned snapshot carries
// every output, group and workspace so callers can label the windows.
func (l *Layer) Toplevels(ctx context.Context, f Filter) (store.Snapshot, error) {
	required := classes(store.ClassToplevels)
	if f.Workspace != "" {
		required = append(required, store.ClassWorkspaces)
	}
	if f.Display != "" {
		required = append(required, store.ClassOutputs)
	}
	snap, err := l.prepare(ctx, required, store.ClassOutputs, store.ClassWorkspaces)
	if err != nil {
		return snap, err
	}
	keep, err := toplevelFilter(snap, f)
	if err != nil {
		return snap, err
	}
	snap.Toplevels = slices.DeleteFunc(snap.Toplevels, func(tl store.Toplevel) bool { return !keep(tl) })
	return snap, nil
}

// toplevelFilter turns f into a predicate, resolving names against snap.
func toplevelFilter(snap store.Snapshot, f Filter) (func(store.Toplevel) bool, error) {
	var preds []func(store.Toplevel) bool

	switch {
	case f.Workspace != "":
		r, err := ResolveWorkspace(snap, WorkspaceRef{Name: f.Workspace, Display: f.Display})
		if err != nil {
			return nil, err
		}
		preds = append(preds, within(func(tl store.Toplevel) []wire.ObjectID { return tl.Workspaces }, r.Workspace.ID))
	case f.Display != "":
		o, err := ResolveOutput(snap, f.Display)
		if err != nil {
			return nil, err
		}
		preds = append(preds, within(func(tl store.Toplevel) []wire.ObjectID { return tl.Outputs }, o.ID))
	}

	if f.AppID != "" {
		pm, err := patternmatcher.New([]string{f.AppID})
		if err != nil {
			return nil, conductorerrors.InvalidInput("invalid app id pattern %q: %v", f.AppID, err)
		}
		preds = append(preds, func(tl store.Toplevel) bool {
			ok, err := pm.MatchesOrParentMatches(tl.AppID)
			return err == nil && ok
		})
	}

	return func(tl store.Toplevel) bool {
		for _, p := range preds {
			if !p(tl) {
				return false
			}
		}
		return true
	}, nil
}

func within(ids func(store.Toplevel) []wire.ObjectID, id wire.ObjectID) func(store.Toplevel) bool {
	return func(tl store.Toplevel) bool { return slices.Contains(ids(tl), id) }
}

// FindOutput resolves a display name against the converged outputs.
func (l *Layer) FindOutput(ctx context.Context, display string) (store.Output, error) {
	snap, err := l.prepare(ctx, classes(store.ClassOutputs))
	if err != nil {
		return store.Output{}, err
	}
	return ResolveOutput(snap, display)
}

// FindWorkspace resolves a workspace reference against the converged
// workspaces.
func (l *Layer) FindWorkspace(ctx context.Context, ref WorkspaceRef) (Resolved, error) {
	snap, err := l.prepareWorkspaces(ctx, ref.Display)
	if err != nil {
		return Resolved{}, err
	}
	return ResolveWorkspace(snap, ref)
}

// prepareWorkspaces converges workspaces, and outputs too when any of the
// displays is set.
func (l *Layer) prepareWorkspaces(ctx context.Context, displays ...string) (store.Snapshot, error) {
	required := classes(store.ClassWorkspaces)
	for _, d := range displays {
		if d != "" {
			required = append(required, store.ClassOutputs)
			break
		}
	}
	return l.prepare(ctx, required, store.ClassOutputs)
}
