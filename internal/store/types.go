package store

import (
	"fmt"

	"github.com/grovetools/conductor/internal/wire"
)

// Class is a category of mirrored entities with its own completeness
// predicate.
type Class int

const (
	ClassOutputs Class = iota
	ClassToplevels
	ClassWorkspaces
)

func (c Class) String() string {
	switch c {
	case ClassOutputs:
		return "outputs"
	case ClassToplevels:
		return "toplevels"
	case ClassWorkspaces:
		return "workspaces"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Mode is one video mode advertised by an output.
type Mode struct {
	Width     int32 `json:"width"`
	Height    int32 `json:"height"`
	Refresh   int32 `json:"refresh_mhz"`
	Current   bool  `json:"current"`
	Preferred bool  `json:"preferred"`
}

// Output mirrors one wl_output.
type Output struct {
	ID             wire.ObjectID
	GlobalName     uint32
	Name           string
	Description    string
	X, Y           int32
	PhysicalWidth  int32
	PhysicalHeight int32
	Make, Model    string
	Transform      int32
	Scale          int32
	Modes          []Mode
	Settled        bool
}

// DisplayName is the name users address an output by: the output name
// when the compositor sent one, otherwise "make+model".
func (o *Output) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Make + "+" + o.Model
}

// ToplevelState is the set of window state flags.
type ToplevelState uint8

const (
	StateMaximized ToplevelState = 1 << iota
	StateMinimized
	StateActivated
	StateFullscreen
	StateSticky
)

// Has reports whether every flag in f is set.
func (s ToplevelState) Has(f ToplevelState) bool { return s&f == f }

// Names lists the set flags in a fixed order.
func (s ToplevelState) Names() []string {
	names := []string{}
	for _, f := range []struct {
		flag ToplevelState
		name string
	}{
		{StateMaximized, "maximized"},
		{StateMinimized, "minimized"},
		{StateActivated, "activated"},
		{StateFullscreen, "fullscreen"},
		{StateSticky, "sticky"},
	} {
		if s.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return names
}

// Rect is a toplevel's geometry on one output.
type Rect struct {
	X      int32 `json:"x"`
	Y      int32 `json:"y"`
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// Toplevel mirrors one window. ID is the primary identity; the cosmic
// and foreign handles are the per-protocol identities of the same window.
type Toplevel struct {
	ID            wire.ObjectID
	CosmicHandle  wire.ObjectID
	ForeignHandle wire.ObjectID
	Title         string
	AppID         string
	Identifier    string
	State         ToplevelState
	Outputs       []wire.ObjectID
	Workspaces    []wire.ObjectID
	Geometry      map[wire.ObjectID]Rect
}

// WorkspaceGroup mirrors one ext workspace group. Workspaces is ordered.
type WorkspaceGroup struct {
	ID           wire.ObjectID
	Workspaces   []wire.ObjectID
	Outputs      []wire.ObjectID
	Capabilities uint32
}

// Index returns the position of ws in the group, or -1.
func (g *WorkspaceGroup) Index(ws wire.ObjectID) int {
	for i, id := range g.Workspaces {
		if id == ws {
			return i
		}
	}
	return -1
}

// Tiling is the tiling mode of a workspace. The zero value is unknown.
type Tiling int

const (
	TilingUnknown Tiling = iota
	TilingDisabled
	TilingEnabled
)

func (t Tiling) String() string {
	switch t {
	case TilingDisabled:
		return "floating"
	case TilingEnabled:
		return "tiled"
	}
	return "unknown"
}

// WorkspaceState is the set of workspace state flags.
type WorkspaceState uint8

const (
	WorkspaceActive WorkspaceState = 1 << iota
	WorkspaceUrgent
	WorkspaceHidden
)

func (s WorkspaceState) Has(f WorkspaceState) bool { return s&f == f }

// Names lists the set flags in a fixed order.
func (s WorkspaceState) Names() []string {
	names := []string{}
	if s.Has(WorkspaceActive) {
		names = append(names, "active")
	}
	if s.Has(WorkspaceUrgent) {
		names = append(names, "urgent")
	}
	if s.Has(WorkspaceHidden) {
		names = append(names, "hidden")
	}
	return names
}

// Capability is one operation a workspace advertises, merged from the
// ext and cosmic workspace protocols.
type Capability uint16

const (
	CapActivate Capability = 1 << iota
	CapDeactivate
	CapRemove
	CapAssign
	CapRename
	CapSetTiling
	CapPin
	CapMove
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapActivate, "activate"},
	{CapDeactivate, "deactivate"},
	{CapRemove, "remove"},
	{CapAssign, "assign"},
	{CapRename, "rename"},
	{CapSetTiling, "set-tiling"},
	{CapPin, "pin"},
	{CapMove, "move"},
}

// Capabilities is a set of workspace capabilities.
type Capabilities uint16

func (c Capabilities) Has(cap Capability) bool { return Capability(c)&cap == cap }

func (c Capabilities) Names() []string {
	names := []string{}
	for _, n := range capabilityNames {
		if c.Has(n.cap) {
			names = append(names, n.name)
		}
	}
	return names
}

// Name returns the user-facing name of a single capability.
func (c Capability) Name() string {
	for _, n := range capabilityNames {
		if n.cap == c {
			return n.name
		}
	}
	return "unknown"
}

// Workspace mirrors one ext workspace. Its group is derived by scanning
// group member lists.
type Workspace struct {
	ID                 wire.ObjectID
	CosmicHandle       wire.ObjectID
	WorkspaceID        string
	Name               string
	Coordinates        []uint32
	Tiling             Tiling
	State              WorkspaceState
	Pinned             bool
	ExtCapabilities    Capabilities
	CosmicCapabilities Capabilities
}

// Capabilities merges the capabilities of both protocols.
func (w *Workspace) Capabilities() Capabilities {
	return w.ExtCapabilities | w.CosmicCapabilities
}
