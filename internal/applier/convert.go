package applier

import (
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/store"
)

// ToplevelState converts a state array into the flag set. Unknown
// values are ignored.
func ToplevelState(states []uint32) store.ToplevelState {
	var out store.ToplevelState
	for _, v := range states {
		switch v {
		case protocol.ToplevelStateMaximized:
			out |= store.StateMaximized
		case protocol.ToplevelStateMinimized:
			out |= store.StateMinimized
		case protocol.ToplevelStateActivated:
			out |= store.StateActivated
		case protocol.ToplevelStateFullscreen:
			out |= store.StateFullscreen
		case protocol.ToplevelStateSticky:
			out |= store.StateSticky
		}
	}
	return out
}

func WorkspaceState(bits uint32) store.WorkspaceState {
	var out store.WorkspaceState
	if bits&protocol.WorkspaceStateActive != 0 {
		out |= store.WorkspaceActive
	}
	if bits&protocol.WorkspaceStateUrgent != 0 {
		out |= store.WorkspaceUrgent
	}
	if bits&protocol.WorkspaceStateHidden != 0 {
		out |= store.WorkspaceHidden
	}
	return out
}

var extCaps = map[uint32]store.Capability{
	protocol.WorkspaceCapActivate:   store.CapActivate,
	protocol.WorkspaceCapDeactivate: store.CapDeactivate,
	protocol.WorkspaceCapRemove:     store.CapRemove,
	protocol.WorkspaceCapAssign:     store.CapAssign,
}

var cosmicCaps = map[uint32]store.Capability{
	protocol.CosmicWorkspaceCapRename:         store.CapRename,
	protocol.CosmicWorkspaceCapSetTilingState: store.CapSetTiling,
	protocol.CosmicWorkspaceCapPin:            store.CapPin,
	protocol.CosmicWorkspaceCapMove:           store.CapMove,
}

func ExtCapabilities(bits uint32) store.Capabilities    { return capabilities(bits, extCaps) }
func CosmicCapabilities(bits uint32) store.Capabilities { return capabilities(bits, cosmicCaps) }

func capabilities(bits uint32, table map[uint32]store.Capability) store.Capabilities {
	var out store.Capabilities
	for bit, c := range table {
		if bits&bit != 0 {
			out |= store.Capabilities(c)
		}
	}
	return out
}

// Tiling converts a cosmic tiling state.
func Tiling(state uint32) store.Tiling {
	switch state {
	case protocol.TilingEnabled:
		return store.TilingEnabled
	case protocol.TilingFloatingOnly:
		return store.TilingDisabled
	}
	return store.TilingUnknown
}
