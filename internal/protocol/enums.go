package protocol

// wl_output.mode flags.
const (
	ModeCurrent   uint32 = 0x1
	ModePreferred uint32 = 0x2
)

// wl_output.transform values.
const (
	TransformNormal int32 = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// TransformName returns the protocol name of an output transform.
func TransformName(t int32) string {
	switch t {
	case TransformNormal:
		return "normal"
	case Transform90:
		return "90"
	case Transform180:
		return "180"
	case Transform270:
		return "270"
	case TransformFlipped:
		return "flipped"
	case TransformFlipped90:
		return "flipped-90"
	case TransformFlipped180:
		return "flipped-180"
	case TransformFlipped270:
		return "flipped-270"
	}
	return "unknown"
}

// zcosmic_toplevel_handle_v1.state values.
const (
	ToplevelStateMaximized  uint32 = 0
	ToplevelStateMinimized  uint32 = 1
	ToplevelStateActivated  uint32 = 2
	ToplevelStateFullscreen uint32 = 3
	ToplevelStateSticky     uint32 = 4
)

// zcosmic_toplevel_manager_v1.capabilities values.
const (
	ManagerCapClose           uint32 = 1
	ManagerCapActivate        uint32 = 2
	ManagerCapMaximize        uint32 = 3
	ManagerCapMinimize        uint32 = 4
	ManagerCapFullscreen      uint32 = 5
	ManagerCapMoveToWorkspace uint32 = 6
	ManagerCapSticky          uint32 = 7
)

// ext_workspace_group_handle_v1.group_capabilities bits.
const (
	GroupCapCreateWorkspace uint32 = 1
)

// ext_workspace_handle_v1.state bits.
const (
	WorkspaceStateActive uint32 = 1
	WorkspaceStateUrgent uint32 = 2
	WorkspaceStateHidden uint32 = 4
)

// ext_workspace_handle_v1.workspace_capabilities bits.
const (
	WorkspaceCapActivate   uint32 = 1
	WorkspaceCapDeactivate uint32 = 2
	WorkspaceCapRemove     uint32 = 4
	WorkspaceCapAssign     uint32 = 8
)

// zcosmic_workspace_handle_v2.workspace_capabilities bits.
const (
	CosmicWorkspaceCapRename         uint32 = 1
	CosmicWorkspaceCapSetTilingState uint32 = 2
	CosmicWorkspaceCapPin            uint32 = 4
	CosmicWorkspaceCapMove           uint32 = 8
)

// zcosmic_workspace_handle_v2.state bits.
const (
	CosmicWorkspaceStatePinned uint32 = 1
)

// zcosmic_workspace_handle_v2.tiling_state values.
const (
	TilingFloatingOnly uint32 = 0
	TilingEnabled      uint32 = 1
)
