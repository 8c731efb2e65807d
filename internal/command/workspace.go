package command

import (
	"context"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/wire"
)

// Last asks MoveWorkspace for the final position of the destination.
const Last = -1

// MoveWorkspace moves the workspace ref to the 1-based position in the
// group shown on display, or in its current group when display is empty.
func (l *Layer) MoveWorkspace(ctx context.Context, ref WorkspaceRef, position int, display string) error {
	snap, err := l.prepareWorkspaces(ctx, ref.Display, display)
	if err != nil {
		return err
	}
	r, err := ResolveWorkspace(snap, ref)
	if err != nil {
		return err
	}
	dest := r.Group
	if display != "" {
		if dest, err = ResolveGroup(snap, display); err != nil {
			return err
		}
	}
	ws := r.Workspace
	same := dest.ID == r.Group.ID
	members := dest.Workspaces

	// slots the workspace can occupy in dest
	slots := len(members)
	if !same {
		slots++
	}

	fields := map[string]interface{}{"workspace": ws.Name, "requested": position}
	var pos int
	switch {
	case position == Last:
		pos = slots - 1
	case position < 1:
		l.warn(ctx, "Position must be at least 1; using 1", fields)
		pos = 0
	default:
		pos = position - 1
		if pos > slots-1 {
			fields["position"] = slots
			l.warn(ctx, "Position is past the end; using the last position", fields)
			pos = slots - 1
		}
	}

	if same && pos == r.Index {
		fields["position"] = pos + 1
		l.warn(ctx, "Workspace is already at this position", fields)
		return nil
	}

	if len(members) == 0 {
		err = l.requests.Assign(ws, dest)
	} else if pos == 0 {
		var before store.Workspace
		if before, err = member(snap, members[0]); err == nil {
			err = l.requests.MoveBefore(ws, before)
		}
	} else {
		refIdx := pos - 1
		if members[refIdx] == ws.ID {
			refIdx = pos
		}
		var after store.Workspace
		if after, err = member(snap, members[refIdx]); err == nil {
			err = l.requests.MoveAfter(ws, after)
		}
	}
	if err != nil {
		return err
	}
	return l.commit()
}

func member(snap store.Snapshot, id wire.ObjectID) (store.Workspace, error) {
	ws, ok := snap.Workspace(id)
	if !ok {
		return store.Workspace{}, conductorerrors.ProtocolState("workspace group member %d is not mirrored", id)
	}
	return ws, nil
}

// commit applies the staged workspace requests and waits for the
// compositor to process them.
func (l *Layer) commit() error {
	if err := l.requests.Commit(); err != nil {
		return err
	}
	return l.session.Finish()
}

// stage resolves ref and runs op unless already reports the workspace is
// in the requested state, in which case it warns and succeeds.
func (l *Layer) stage(ctx context.Context, ref WorkspaceRef, already func(store.Workspace) bool, noop string, op func(store.Workspace) error) error {
	r, err := l.FindWorkspace(ctx, ref)
	if err != nil {
		return err
	}
	if already(r.Workspace) {
		l.warn(ctx, noop, map[string]interface{}{"workspace": r.Workspace.Name})
		return nil
	}
	if err := op(r.Workspace); err != nil {
		return err
	}
	return l.commit()
}

func (l *Layer) PinWorkspace(ctx context.Context, ref WorkspaceRef) error {
	return l.stage(ctx, ref,
		func(ws store.Workspace) bool { return ws.Pinned },
		"Workspace is already pinned", l.requests.Pin)
}

func (l *Layer) UnpinWorkspace(ctx context.Context, ref WorkspaceRef) error {
	return l.stage(ctx, ref,
		func(ws store.Workspace) bool { return !ws.Pinned },
		"Workspace is not pinned", l.requests.Unpin)
}

func (l *Layer) ActivateWorkspace(ctx context.Context, ref WorkspaceRef) error {
	return l.stage(ctx, ref,
		func(ws store.Workspace) bool { return ws.State.Has(store.WorkspaceActive) },
		"Workspace is already active", l.requests.Activate)
}

func (l *Layer) DeactivateWorkspace(ctx context.Context, ref WorkspaceRef) error {
	return l.stage(ctx, ref,
		func(ws store.Workspace) bool { return !ws.State.Has(store.WorkspaceActive) },
		"Workspace is not active", l.requests.Deactivate)
}

// RenameWorkspace gives the workspace a new name.
func (l *Layer) RenameWorkspace(ctx context.Context, ref WorkspaceRef, name string) error {
	return l.stage(ctx, ref,
		func(ws store.Workspace) bool { return ws.Name == name },
		"Workspace already has this name",
		func(ws store.Workspace) error { return l.requests.Rename(ws, name) })
}

// SetWorkspaceTiling turns automatic tiling on or off.
func (l *Layer) SetWorkspaceTiling(ctx context.Context, ref WorkspaceRef, enabled bool) error {
	want := store.TilingDisabled
	if enabled {
		want = store.TilingEnabled
	}
	return l.stage(ctx, ref,
		func(ws store.Workspace) bool { return ws.Tiling == want },
		"Workspace tiling is already "+want.String(),
		func(ws store.Workspace) error { return l.requests.SetTiling(ws, enabled) })
}
