package protocol

import (
	"fmt"

	"github.com/grovetools/conductor/internal/wire"
)

// ErrUnknownOpcode is returned by Decode for opcodes past the end of
// the interface's event table.
type ErrUnknownOpcode struct {
	Interface string
	Opcode    uint16
}

func (e *ErrUnknownOpcode) Error() string {
	return fmt.Sprintf("%s: unknown event opcode %d", e.Interface, e.Opcode)
}

// Decode parses a wire message addressed to an object of interface
// iface into a typed event.
func Decode(iface string, m wire.Message) (Event, error) {
	table, ok := Lookup(iface)
	if !ok {
		return nil, fmt.Errorf("no schema for interface %q", iface)
	}
	sig, ok := table.Event(m.Opcode)
	if !ok {
		return nil, &ErrUnknownOpcode{Interface: iface, Opcode: m.Opcode}
	}
	args, err := DecodeArgs(sig, m.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", iface, err)
	}
	ev := NewEvent(iface, m.Opcode, m.Object, args)
	if ev == nil {
		return nil, &ErrUnknownOpcode{Interface: iface, Opcode: m.Opcode}
	}
	return ev, nil
}

// NewEvent builds the typed event for decoded arguments. It returns nil
// for events that have no typed form, such as wl_display and
// wl_callback events which the transport consumes itself.
func NewEvent(iface string, opcode uint16, object wire.ObjectID, args []any) Event {
	t := Target{Object: object}
	switch iface {
	case Registry:
		switch opcode {
		case 0:
			return RegistryGlobal{Target: t, Name: u(args, 0), Interface: s(args, 1), Version: u(args, 2)}
		case 1:
			return RegistryGlobalRemove{Target: t, Name: u(args, 0)}
		}
	case Output:
		switch opcode {
		case 0:
			return OutputGeometry{Target: t, X: n(args, 0), Y: n(args, 1), PhysicalWidth: n(args, 2),
				PhysicalHeight: n(args, 3), Subpixel: n(args, 4), Make: s(args, 5), Model: s(args, 6),
				Transform: n(args, 7)}
		case 1:
			return OutputMode{Target: t, Flags: u(args, 0), Width: n(args, 1), Height: n(args, 2), Refresh: n(args, 3)}
		case 2:
			return OutputDone{Target: t}
		case 3:
			return OutputScale{Target: t, Factor: n(args, 0)}
		case 4:
			return OutputName{Target: t, Name: s(args, 0)}
		case 5:
			return OutputDescription{Target: t, Description: s(args, 0)}
		}
	case Seat:
		switch opcode {
		case 0:
			return SeatCapabilities{Target: t, Capabilities: u(args, 0)}
		case 1:
			return SeatName{Target: t, Name: s(args, 0)}
		}
	case ForeignToplevelList:
		switch opcode {
		case 0:
			return ForeignToplevelNew{Target: t, Handle: o(args, 0)}
		case 1:
			return ForeignToplevelListFinished{Target: t}
		}
	case ForeignToplevelHandle:
		switch opcode {
		case 0:
			return ForeignToplevelClosed{Target: t}
		case 1:
			return ForeignToplevelDone{Target: t}
		case 2:
			return ForeignToplevelTitle{Target: t, Title: s(args, 0)}
		case 3:
			return ForeignToplevelAppID{Target: t, AppID: s(args, 0)}
		case 4:
			return ForeignToplevelIdentifier{Target: t, Identifier: s(args, 0)}
		}
	case CosmicToplevelInfo:
		switch opcode {
		case 0:
			return CosmicToplevelNew{Target: t, Handle: o(args, 0)}
		case 1:
			return CosmicInfoFinished{Target: t}
		case 2:
			return CosmicInfoDone{Target: t}
		}
	case CosmicToplevelHandle:
		switch opcode {
		case 0:
			return CosmicToplevelClosed{Target: t}
		case 1:
			return CosmicToplevelDone{Target: t}
		case 2:
			return CosmicToplevelTitle{Target: t, Title: s(args, 0)}
		case 3:
			return CosmicToplevelAppID{Target: t, AppID: s(args, 0)}
		case 4:
			return CosmicToplevelOutputEnter{Target: t, Output: o(args, 0)}
		case 5:
			return CosmicToplevelOutputLeave{Target: t, Output: o(args, 0)}
		case 6:
			return CosmicToplevelWorkspaceEnter{Target: t, Workspace: o(args, 0)}
		case 7:
			return CosmicToplevelWorkspaceLeave{Target: t, Workspace: o(args, 0)}
		case 8:
			return CosmicToplevelState{Target: t, States: wire.Uint32s(a(args, 0))}
		case 9:
			return CosmicToplevelGeometry{Target: t, Output: o(args, 0), X: n(args, 1), Y: n(args, 2),
				Width: n(args, 3), Height: n(args, 4)}
		case 10:
			return CosmicToplevelExtWorkspaceEnter{Target: t, Workspace: o(args, 0)}
		case 11:
			return CosmicToplevelExtWorkspaceLeave{Target: t, Workspace: o(args, 0)}
		}
	case CosmicToplevelManager:
		if opcode == 0 {
			return ManagerCapabilities{Target: t, Capabilities: wire.Uint32s(a(args, 0))}
		}
	case WorkspaceManager:
		switch opcode {
		case 0:
			return WorkspaceGroupNew{Target: t, Handle: o(args, 0)}
		case 1:
			return WorkspaceNew{Target: t, Handle: o(args, 0)}
		case 2:
			return WorkspaceManagerDone{Target: t}
		case 3:
			return WorkspaceManagerFinished{Target: t}
		}
	case WorkspaceGroupHandle:
		switch opcode {
		case 0:
			return GroupCapabilities{Target: t, Capabilities: u(args, 0)}
		case 1:
			return GroupOutputEnter{Target: t, Output: o(args, 0)}
		case 2:
			return GroupOutputLeave{Target: t, Output: o(args, 0)}
		case 3:
			return GroupWorkspaceEnter{Target: t, Workspace: o(args, 0)}
		case 4:
			return GroupWorkspaceLeave{Target: t, Workspace: o(args, 0)}
		case 5:
			return GroupRemoved{Target: t}
		}
	case WorkspaceHandle:
		switch opcode {
		case 0:
			return WorkspaceID{Target: t, ID: s(args, 0)}
		case 1:
			return WorkspaceName{Target: t, Name: s(args, 0)}
		case 2:
			return WorkspaceCoordinates{Target: t, Coordinates: wire.Uint32s(a(args, 0))}
		case 3:
			return WorkspaceState{Target: t, State: u(args, 0)}
		case 4:
			return WorkspaceCapabilities{Target: t, Capabilities: u(args, 0)}
		case 5:
			return WorkspaceRemoved{Target: t}
		}
	case CosmicWorkspaceHandle:
		switch opcode {
		case 0:
			return CosmicWorkspaceCapabilities{Target: t, Capabilities: u(args, 0)}
		case 1:
			return CosmicWorkspaceTilingState{Target: t, State: u(args, 0)}
		case 2:
			return CosmicWorkspaceState{Target: t, State: u(args, 0)}
		}
	}
	return nil
}

func u(args []any, i int) uint32        { return args[i].(uint32) }
func n(args []any, i int) int32         { return args[i].(int32) }
func s(args []any, i int) string        { return args[i].(string) }
func o(args []any, i int) wire.ObjectID { return args[i].(wire.ObjectID) }
func a(args []any, i int) []byte        { return args[i].([]byte) }
