package command

import (
	"context"
	"slices"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/store"
)

// StateOp is how a window state flag should change.
type StateOp int

const (
	OpSet StateOp = iota
	OpUnset
	OpToggle
)

func (o StateOp) String() string {
	switch o {
	case OpUnset:
		return "unset"
	case OpToggle:
		return "toggle"
	}
	return "set"
}

// ParseStateOp maps the --set/--unset/--toggle flags to an operation.
// No flag means set; more than one is rejected.
func ParseStateOp(set, unset, toggle bool) (StateOp, error) {
	n := 0
	op := OpSet
	if set {
		n++
	}
	if unset {
		n++
		op = OpUnset
	}
	if toggle {
		n++
		op = OpToggle
	}
	if n > 1 {
		return OpSet, conductorerrors.InvalidInput("--set, --unset and --toggle are mutually exclusive")
	}
	return op, nil
}

func (l *Layer) toplevel(ctx context.Context, prefix string, optional ...store.Class) (store.Snapshot, store.Toplevel, error) {
	if prefix == "" {
		return store.Snapshot{}, store.Toplevel{}, conductorerrors.InvalidInput("toplevel identifier must not be empty")
	}
	snap, err := l.prepare(ctx, classes(store.ClassToplevels), optional...)
	if err != nil {
		return snap, store.Toplevel{}, err
	}
	tl, err := ResolveToplevel(snap, prefix)
	return snap, tl, err
}

// SetToplevelState changes one state flag of the window matching prefix.
// Toggle reads the mirrored flag and requests the opposite.
func (l *Layer) SetToplevelState(ctx context.Context, prefix string, flag store.ToplevelState, op StateOp) error {
	_, tl, err := l.toplevel(ctx, prefix)
	if err != nil {
		return err
	}
	on := op == OpSet
	if op == OpToggle {
		on = !tl.State.Has(flag)
	}
	l.logger.WithField("toplevel", tl.Identifier).WithField("op", op.String()).Debug("Changing window state")
	if err := l.requests.SetState(tl, flag, on); err != nil {
		return err
	}
	return l.session.Finish()
}

// ActivateToplevel focuses the window matching prefix.
func (l *Layer) ActivateToplevel(ctx context.Context, prefix string) error {
	_, tl, err := l.toplevel(ctx, prefix)
	if err != nil {
		return err
	}
	if err := l.requests.ActivateToplevel(tl); err != nil {
		return err
	}
	return l.session.Finish()
}

// CloseToplevel asks the window matching prefix to close.
func (l *Layer) CloseToplevel(ctx context.Context, prefix string) error {
	_, tl, err := l.toplevel(ctx, prefix)
	if err != nil {
		return err
	}
	if err := l.requests.CloseToplevel(tl); err != nil {
		return err
	}
	return l.session.Finish()
}

// MoveToplevelToWorkspace moves the window matching prefix to the
// workspace ref, on the first output showing that workspace's group.
func (l *Layer) MoveToplevelToWorkspace(ctx context.Context, prefix string, ref WorkspaceRef) error {
	if prefix == "" {
		return conductorerrors.InvalidInput("toplevel identifier must not be empty")
	}
	required := classes(store.ClassToplevels, store.ClassWorkspaces, store.ClassOutputs)
	snap, err := l.prepare(ctx, required)
	if err != nil {
		return err
	}
	tl, err := ResolveToplevel(snap, prefix)
	if err != nil {
		return err
	}
	r, err := ResolveWorkspace(snap, ref)
	if err != nil {
		return err
	}
	if slices.Contains(tl.Workspaces, r.Workspace.ID) {
		l.warn(ctx, "Window is already on this workspace", map[string]interface{}{
			"toplevel":  tl.Identifier,
			"workspace": r.Workspace.Name,
		})
		return nil
	}
	outputs := r.Group.Outputs
	if len(outputs) == 0 {
		return conductorerrors.ProtocolState("workspace '%s' is not shown on any output", r.Workspace.Name)
	}
	if err := l.requests.MoveToWorkspace(tl, r.Workspace, outputs[0]); err != nil {
		return err
	}
	return l.session.Finish()
}
