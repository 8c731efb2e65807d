package present

import (
	"fmt"

	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/wire"
)

// ModeView is one video mode.
type ModeView struct {
	Width     int32   `json:"width"`
	Height    int32   `json:"height"`
	RefreshHz float64 `json:"refresh_hz"`
	Current   bool    `json:"current"`
	Preferred bool    `json:"preferred"`
}

func (m ModeView) String() string {
	return fmt.Sprintf("%dx%d@%.2fHz", m.Width, m.Height, m.RefreshHz)
}

// OutputView is the listed form of an output.
type OutputView struct {
	Display        string     `json:"display" jsonschema:"description=Name used to address the output"`
	Name           string     `json:"name,omitempty"`
	Description    string     `json:"description,omitempty"`
	Make           string     `json:"make"`
	Model          string     `json:"model"`
	X              int32      `json:"x"`
	Y              int32      `json:"y"`
	PhysicalWidth  int32      `json:"physical_width_mm"`
	PhysicalHeight int32      `json:"physical_height_mm"`
	Transform      string     `json:"transform"`
	Scale          int32      `json:"scale"`
	CurrentMode    *ModeView  `json:"current_mode,omitempty"`
	Modes          []ModeView `json:"modes"`
}

// ToplevelView is the listed form of a window.
type ToplevelView struct {
	Identifier string   `json:"identifier"`
	Title      string   `json:"title"`
	AppID      string   `json:"app_id"`
	State      []string `json:"state"`
	Workspaces []string `json:"workspaces"`
	Outputs    []string `json:"outputs"`
	// Geometry is keyed by display name.
	Geometry map[string]store.Rect `json:"geometry,omitempty"`
}

// WorkspaceGroupView is the listed form of a workspace group.
type WorkspaceGroupView struct {
	Displays           []string `json:"displays"`
	Workspaces         []string `json:"workspaces"`
	CanCreateWorkspace bool     `json:"can_create_workspace"`
}

// WorkspaceView is the listed form of a workspace.
type WorkspaceView struct {
	Name          string   `json:"name"`
	WaylandID     string   `json:"wayland_id,omitempty"`
	Position      int      `json:"position,omitempty" jsonschema:"description=1-based position in its group"`
	Displays      []string `json:"displays"`
	Coordinates   []uint32 `json:"coordinates,omitempty"`
	State         []string `json:"state"`
	Tiling        string   `json:"tiling"`
	Pinned        bool     `json:"pinned"`
	ToplevelCount int      `json:"toplevel_count"`
	Capabilities  []string `json:"capabilities,omitempty"`
}

// Outputs builds the output views of snap.
func Outputs(snap store.Snapshot) []OutputView {
	views := make([]OutputView, 0, len(snap.Outputs))
	for _, o := range snap.Outputs {
		v := OutputView{
			Display:        o.DisplayName(),
			Name:           o.Name,
			Description:    o.Description,
			Make:           o.Make,
			Model:          o.Model,
			X:              o.X,
			Y:              o.Y,
			PhysicalWidth:  o.PhysicalWidth,
			PhysicalHeight: o.PhysicalHeight,
			Transform:      protocol.TransformName(o.Transform),
			Scale:          o.Scale,
			Modes:          make([]ModeView, 0, len(o.Modes)),
		}
		for _, m := range o.Modes {
			mv := ModeView{
				Width:     m.Width,
				Height:    m.Height,
				RefreshHz: float64(m.Refresh) / 1000,
				Current:   m.Current,
				Preferred: m.Preferred,
			}
			v.Modes = append(v.Modes, mv)
			if m.Current {
				v.CurrentMode = &mv
			}
		}
		views = append(views, v)
	}
	return views
}

// Toplevels builds the toplevel views of snap.
func Toplevels(snap store.Snapshot) []ToplevelView {
	views := make([]ToplevelView, 0, len(snap.Toplevels))
	for _, tl := range snap.Toplevels {
		views = append(views, ToplevelView{
			Identifier: tl.Identifier,
			Title:      tl.Title,
			AppID:      tl.AppID,
			State:      tl.State.Names(),
			Workspaces: workspaceNames(snap, tl.Workspaces),
			Outputs:    snap.OutputNames(tl.Outputs),
			Geometry:   geometry(snap, tl.Geometry),
		})
	}
	return views
}

func geometry(snap store.Snapshot, rects map[wire.ObjectID]store.Rect) map[string]store.Rect {
	if len(rects) == 0 {
		return nil
	}
	out := make(map[string]store.Rect, len(rects))
	for id, r := range rects {
		if o, ok := snap.Output(id); ok {
			out[o.DisplayName()] = r
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// WorkspaceGroups builds the group views of snap.
func WorkspaceGroups(snap store.Snapshot) []WorkspaceGroupView {
	views := make([]WorkspaceGroupView, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		views = append(views, WorkspaceGroupView{
			Displays:           snap.OutputNames(g.Outputs),
			Workspaces:         workspaceNames(snap, g.Workspaces),
			CanCreateWorkspace: g.Capabilities&protocol.GroupCapCreateWorkspace != 0,
		})
	}
	return views
}

// Workspaces builds the workspace views of snap, listing capabilities
// when withCapabilities is set.
func Workspaces(snap store.Snapshot, withCapabilities bool) []WorkspaceView {
	views := make([]WorkspaceView, 0, len(snap.Workspaces))
	for _, ws := range snap.Workspaces {
		v := WorkspaceView{
			Name:          ws.Name,
			WaylandID:     ws.WorkspaceID,
			Displays:      []string{},
			Coordinates:   ws.Coordinates,
			State:         ws.State.Names(),
			Tiling:        ws.Tiling.String(),
			Pinned:        ws.Pinned,
			ToplevelCount: toplevelCount(snap, ws.ID),
		}
		if g, idx, ok := snap.GroupOf(ws.ID); ok {
			v.Position = idx + 1
			v.Displays = snap.OutputNames(g.Outputs)
		}
		if withCapabilities {
			v.Capabilities = ws.Capabilities().Names()
		}
		views = append(views, v)
	}
	return views
}

func workspaceNames(snap store.Snapshot, ids []wire.ObjectID) []string {
	names := []string{}
	for _, id := range ids {
		if ws, ok := snap.Workspace(id); ok {
			names = append(names, ws.Name)
		}
	}
	return names
}

func toplevelCount(snap store.Snapshot, ws wire.ObjectID) int {
	n := 0
	for _, tl := range snap.Toplevels {
		for _, id := range tl.Workspaces {
			if id == ws {
				n++
				break
			}
		}
	}
	return n
}

// PrintHuman writes the output as a tree.
func (v OutputView) PrintHuman(p *Printer) {
	p.Field("Display", v.Display)
	p.Optional("Description", v.Description)
	p.Field("Make", v.Make)
	p.Field("Model", v.Model)
	p.Field("Position", fmt.Sprintf("%d,%d", v.X, v.Y))
	p.Field("Physical size", fmt.Sprintf("%dx%d mm", v.PhysicalWidth, v.PhysicalHeight))
	if v.Transform != "normal" {
		p.Field("Transform", v.Transform)
	}
	p.Field("Scale", v.Scale)
	if m := v.CurrentMode; m != nil {
		p.Struct("Current mode", func(p *Printer) {
			p.Field("Width", m.Width)
			p.Field("Height", m.Height)
			p.Field("Refresh", fmt.Sprintf("%.2f Hz", m.RefreshHz))
			p.Field("Preferred", m.Preferred)
		})
	}
	if len(v.Modes) > 1 {
		modes := make([]string, len(v.Modes))
		for i, m := range v.Modes {
			modes[i] = m.String()
		}
		p.List("Modes", modes)
	}
}

// PrintHuman writes the window as a tree. Workspace and output are shown
// only when the window is on exactly one of each.
func (v ToplevelView) PrintHuman(p *Printer) {
	p.Field("Title", v.Title)
	p.Field("App ID", v.AppID)
	p.Field("Identifier", v.Identifier)
	p.InlineList("State", v.State)
	if len(v.Workspaces) == 1 {
		p.Field("Workspace", v.Workspaces[0])
	}
	if len(v.Outputs) == 1 {
		p.Field("Output", v.Outputs[0])
		if r, ok := v.Geometry[v.Outputs[0]]; ok {
			p.Field("Geometry", fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y))
		}
	}
}

// PrintHuman writes the group as a tree.
func (v WorkspaceGroupView) PrintHuman(p *Printer) {
	p.InlineList("Displays", v.Displays)
	p.Field("Workspace count", len(v.Workspaces))
	p.InlineList("Workspaces", v.Workspaces)
	p.Field("Can create workspace", v.CanCreateWorkspace)
}

// PrintHuman writes the workspace as a tree.
func (v WorkspaceView) PrintHuman(p *Printer) {
	p.Field("Name", v.Name)
	p.Optional("Wayland ID", v.WaylandID)
	p.InlineList("Displays", v.Displays)
	if v.Position > 0 {
		p.Field("Position", v.Position)
	}
	p.InlineList("State", v.State)
	p.Field("Tiling", v.Tiling)
	p.Field("Pinned", v.Pinned)
	p.Field("Toplevel count", v.ToplevelCount)
	if v.Capabilities != nil {
		p.List("Capabilities", v.Capabilities)
	}
}
