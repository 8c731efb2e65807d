package protocol

import "github.com/grovetools/conductor/internal/wire"

// Event is a decoded event addressed to one protocol object.
type Event interface {
	Source() wire.ObjectID
}

// Target carries the id of the object an event was addressed to.
type Target struct {
	Object wire.ObjectID
}

func (t Target) Source() wire.ObjectID { return t.Object }

// wl_registry

type RegistryGlobal struct {
	Target
	Name      uint32
	Interface string
	Version   uint32
}

type RegistryGlobalRemove struct {
	Target
	Name uint32
}

// wl_output

type OutputGeometry struct {
	Target
	X, Y           int32
	PhysicalWidth  int32
	PhysicalHeight int32
	Subpixel       int32
	Make, Model    string
	Transform      int32
}

type OutputMode struct {
	Target
	Flags         uint32
	Width, Height int32
	Refresh       int32
}

type OutputDone struct{ Target }

type OutputScale struct {
	Target
	Factor int32
}

type OutputName struct {
	Target
	Name string
}

type OutputDescription struct {
	Target
	Description string
}

// wl_seat

type SeatCapabilities struct {
	Target
	Capabilities uint32
}

type SeatName struct {
	Target
	Name string
}

// ext_foreign_toplevel_list_v1

type ForeignToplevelNew struct {
	Target
	Handle wire.ObjectID
}

type ForeignToplevelListFinished struct{ Target }

// ext_foreign_toplevel_handle_v1

type ForeignToplevelClosed struct{ Target }

type ForeignToplevelDone struct{ Target }

type ForeignToplevelTitle struct {
	Target
	Title string
}

type ForeignToplevelAppID struct {
	Target
	AppID string
}

type ForeignToplevelIdentifier struct {
	Target
	Identifier string
}

// zcosmic_toplevel_info_v1

// CosmicToplevelNew is the legacy per-toplevel announcement sent by
// version 1 info objects.
type CosmicToplevelNew struct {
	Target
	Handle wire.ObjectID
}

type CosmicInfoFinished struct{ Target }

type CosmicInfoDone struct{ Target }

// zcosmic_toplevel_handle_v1

type CosmicToplevelClosed struct{ Target }

type CosmicToplevelDone struct{ Target }

type CosmicToplevelTitle struct {
	Target
	Title string
}

type CosmicToplevelAppID struct {
	Target
	AppID string
}

type CosmicToplevelOutputEnter struct {
	Target
	Output wire.ObjectID
}

type CosmicToplevelOutputLeave struct {
	Target
	Output wire.ObjectID
}

// CosmicToplevelWorkspaceEnter references a legacy cosmic workspace
// object, which conductor never binds.
type CosmicToplevelWorkspaceEnter struct {
	Target
	Workspace wire.ObjectID
}

type CosmicToplevelWorkspaceLeave struct {
	Target
	Workspace wire.ObjectID
}

type CosmicToplevelState struct {
	Target
	States []uint32
}

type CosmicToplevelGeometry struct {
	Target
	Output        wire.ObjectID
	X, Y          int32
	Width, Height int32
}

type CosmicToplevelExtWorkspaceEnter struct {
	Target
	Workspace wire.ObjectID
}

type CosmicToplevelExtWorkspaceLeave struct {
	Target
	Workspace wire.ObjectID
}

// zcosmic_toplevel_manager_v1

type ManagerCapabilities struct {
	Target
	Capabilities []uint32
}

// ext_workspace_manager_v1

type WorkspaceGroupNew struct {
	Target
	Handle wire.ObjectID
}

type WorkspaceNew struct {
	Target
	Handle wire.ObjectID
}

type WorkspaceManagerDone struct{ Target }

type WorkspaceManagerFinished struct{ Target }

// ext_workspace_group_handle_v1

type GroupCapabilities struct {
	Target
	Capabilities uint32
}

type GroupOutputEnter struct {
	Target
	Output wire.ObjectID
}

type GroupOutputLeave struct {
	Target
	Output wire.ObjectID
}

type GroupWorkspaceEnter struct {
	Target
	Workspace wire.ObjectID
}

type GroupWorkspaceLeave struct {
	Target
	Workspace wire.ObjectID
}

type GroupRemoved struct{ Target }

// ext_workspace_handle_v1

type WorkspaceID struct {
	Target
	ID string
}

type WorkspaceName struct {
	Target
	Name string
}

type WorkspaceCoordinates struct {
	Target
	Coordinates []uint32
}

type WorkspaceState struct {
	Target
	State uint32
}

type WorkspaceCapabilities struct {
	Target
	Capabilities uint32
}

type WorkspaceRemoved struct{ Target }

// zcosmic_workspace_handle_v2

type CosmicWorkspaceCapabilities struct {
	Target
	Capabilities uint32
}

type CosmicWorkspaceTilingState struct {
	Target
	State uint32
}

type CosmicWorkspaceState struct {
	Target
	State uint32
}
