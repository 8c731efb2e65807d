// Package protocol describes the Wayland interfaces conductor speaks:
// their request and event signatures, enum values and typed events.
package protocol

import "fmt"

// Interface names.
const (
	Display                = "wl_display"
	Registry               = "wl_registry"
	Callback               = "wl_callback"
	Output                 = "wl_output"
	Seat                   = "wl_seat"
	ForeignToplevelList    = "ext_foreign_toplevel_list_v1"
	ForeignToplevelHandle  = "ext_foreign_toplevel_handle_v1"
	CosmicToplevelInfo     = "zcosmic_toplevel_info_v1"
	CosmicToplevelHandle   = "zcosmic_toplevel_handle_v1"
	CosmicToplevelManager  = "zcosmic_toplevel_manager_v1"
	WorkspaceManager       = "ext_workspace_manager_v1"
	WorkspaceGroupHandle   = "ext_workspace_group_handle_v1"
	WorkspaceHandle        = "ext_workspace_handle_v1"
	CosmicWorkspaceManager = "zcosmic_workspace_manager_v2"
	CosmicWorkspaceHandle  = "zcosmic_workspace_handle_v2"
)

// ArgType is the wire type of one argument.
type ArgType uint8

const (
	ArgInt ArgType = iota
	ArgUint
	ArgFixed
	ArgString
	ArgObject
	ArgNewID
	ArgArray
)

func (t ArgType) String() string {
	switch t {
	case ArgInt:
		return "int"
	case ArgUint:
		return "uint"
	case ArgFixed:
		return "fixed"
	case ArgString:
		return "string"
	case ArgObject:
		return "object"
	case ArgNewID:
		return "new_id"
	case ArgArray:
		return "array"
	}
	return fmt.Sprintf("ArgType(%d)", uint8(t))
}

// Arg describes one argument. A new_id with an empty Interface is
// encoded as (interface string, version uint, id uint).
type Arg struct {
	Name      string
	Type      ArgType
	Interface string
	Nullable  bool
}

// Message is a request or event signature.
type Message struct {
	Name  string
	Since uint32
	Args  []Arg
}

// Interface is the signature table of one protocol interface.
type Interface struct {
	Name     string
	Version  uint32
	Requests []Message
	Events   []Message
}

// Request returns the opcode and signature of a named request.
func (i *Interface) Request(name string) (uint16, *Message, bool) {
	for op := range i.Requests {
		if i.Requests[op].Name == name {
			return uint16(op), &i.Requests[op], true
		}
	}
	return 0, nil, false
}

// Event returns the signature for an event opcode.
func (i *Interface) Event(opcode uint16) (*Message, bool) {
	if int(opcode) >= len(i.Events) {
		return nil, false
	}
	return &i.Events[opcode], true
}

// Lookup returns the interface table for name.
func Lookup(name string) (*Interface, bool) {
	i, ok := interfaces[name]
	return i, ok
}

func msg(name string, since uint32, args ...Arg) Message {
	return Message{Name: name, Since: since, Args: args}
}

func i32(name string) Arg        { return Arg{Name: name, Type: ArgInt} }
func u32(name string) Arg        { return Arg{Name: name, Type: ArgUint} }
func str(name string) Arg        { return Arg{Name: name, Type: ArgString} }
func arr(name string) Arg        { return Arg{Name: name, Type: ArgArray} }
func obj(name, iface string) Arg { return Arg{Name: name, Type: ArgObject, Interface: iface} }
func optObj(name, iface string) Arg {
	return Arg{Name: name, Type: ArgObject, Interface: iface, Nullable: true}
}
func newID(name, iface string) Arg { return Arg{Name: name, Type: ArgNewID, Interface: iface} }

var interfaces = map[string]*Interface{
	Display: {
		Name: Display, Version: 1,
		Requests: []Message{
			msg("sync", 1, newID("callback", Callback)),
			msg("get_registry", 1, newID("registry", Registry)),
		},
		Events: []Message{
			msg("error", 1, obj("object_id", ""), u32("code"), str("message")),
			msg("delete_id", 1, u32("id")),
		},
	},
	Registry: {
		Name: Registry, Version: 1,
		Requests: []Message{
			msg("bind", 1, u32("name"), newID("id", "")),
		},
		Events: []Message{
			msg("global", 1, u32("name"), str("interface"), u32("version")),
			msg("global_remove", 1, u32("name")),
		},
	},
	Callback: {
		Name: Callback, Version: 1,
		Events: []Message{
			msg("done", 1, u32("callback_data")),
		},
	},
	Output: {
		Name: Output, Version: 4,
		Requests: []Message{
			msg("release", 3),
		},
		Events: []Message{
			msg("geometry", 1, i32("x"), i32("y"), i32("physical_width"), i32("physical_height"),
				i32("subpixel"), str("make"), str("model"), i32("transform")),
			msg("mode", 1, u32("flags"), i32("width"), i32("height"), i32("refresh")),
			msg("done", 2),
			msg("scale", 2, i32("factor")),
			msg("name", 4, str("name")),
			msg("description", 4, str("description")),
		},
	},
	Seat: {
		Name: Seat, Version: 1,
		Requests: []Message{
			msg("get_pointer", 1, newID("id", "wl_pointer")),
			msg("get_keyboard", 1, newID("id", "wl_keyboard")),
			msg("get_touch", 1, newID("id", "wl_touch")),
			msg("release", 5),
		},
		Events: []Message{
			msg("capabilities", 1, u32("capabilities")),
			msg("name", 2, str("name")),
		},
	},
	ForeignToplevelList: {
		Name: ForeignToplevelList, Version: 1,
		Requests: []Message{
			msg("stop", 1),
			msg("destroy", 1),
		},
		Events: []Message{
			msg("toplevel", 1, newID("toplevel", ForeignToplevelHandle)),
			msg("finished", 1),
		},
	},
	ForeignToplevelHandle: {
		Name: ForeignToplevelHandle, Version: 1,
		Requests: []Message{
			msg("destroy", 1),
		},
		Events: []Message{
			msg("closed", 1),
			msg("done", 1),
			msg("title", 1, str("title")),
			msg("app_id", 1, str("app_id")),
			msg("identifier", 1, str("identifier")),
		},
	},
	CosmicToplevelInfo: {
		Name: CosmicToplevelInfo, Version: 3,
		Requests: []Message{
			msg("stop", 1),
			msg("get_cosmic_toplevel", 2, newID("cosmic_toplevel", CosmicToplevelHandle), obj("foreign_toplevel", ForeignToplevelHandle)),
		},
		Events: []Message{
			msg("toplevel", 1, newID("toplevel", CosmicToplevelHandle)),
			msg("finished", 1),
			msg("done", 2),
		},
	},
	CosmicToplevelHandle: {
		Name: CosmicToplevelHandle, Version: 3,
		Requests: []Message{
			msg("destroy", 1),
		},
		Events: []Message{
			msg("closed", 1),
			msg("done", 1),
			msg("title", 1, str("title")),
			msg("app_id", 1, str("app_id")),
			msg("output_enter", 1, obj("output", Output)),
			msg("output_leave", 1, obj("output", Output)),
			msg("workspace_enter", 1, obj("workspace", "zcosmic_workspace_handle_v1")),
			msg("workspace_leave", 1, obj("workspace", "zcosmic_workspace_handle_v1")),
			msg("state", 1, arr("state")),
			msg("geometry", 2, obj("output", Output), i32("x"), i32("y"), i32("width"), i32("height")),
			msg("ext_workspace_enter", 3, obj("workspace", WorkspaceHandle)),
			msg("ext_workspace_leave", 3, obj("workspace", WorkspaceHandle)),
		},
	},
	CosmicToplevelManager: {
		Name: CosmicToplevelManager, Version: 4,
		Requests: []Message{
			msg("destroy", 1),
			msg("close", 1, obj("toplevel", CosmicToplevelHandle)),
			msg("activate", 1, obj("toplevel", CosmicToplevelHandle), obj("seat", Seat)),
			msg("set_maximized", 1, obj("toplevel", CosmicToplevelHandle)),
			msg("unset_maximized", 1, obj("toplevel", CosmicToplevelHandle)),
			msg("set_minimized", 1, obj("toplevel", CosmicToplevelHandle)),
			msg("unset_minimized", 1, obj("toplevel", CosmicToplevelHandle)),
			msg("set_fullscreen", 1, obj("toplevel", CosmicToplevelHandle), optObj("output", Output)),
			msg("unset_fullscreen", 1, obj("toplevel", CosmicToplevelHandle)),
			msg("set_rectangle", 1, obj("toplevel", CosmicToplevelHandle), obj("surface", "wl_surface"),
				i32("x"), i32("y"), i32("width"), i32("height")),
			msg("move_to_workspace", 2, obj("toplevel", CosmicToplevelHandle),
				obj("workspace", "zcosmic_workspace_handle_v1"), obj("output", Output)),
			msg("set_sticky", 3, obj("toplevel", CosmicToplevelHandle)),
			msg("unset_sticky", 3, obj("toplevel", CosmicToplevelHandle)),
			msg("move_to_ext_workspace", 4, obj("toplevel", CosmicToplevelHandle),
				obj("workspace", WorkspaceHandle), obj("output", Output)),
		},
		Events: []Message{
			msg("capabilities", 1, arr("capabilities")),
		},
	},
	WorkspaceManager: {
		Name: WorkspaceManager, Version: 1,
		Requests: []Message{
			msg("commit", 1),
			msg("stop", 1),
		},
		Events: []Message{
			msg("workspace_group", 1, newID("workspace_group", WorkspaceGroupHandle)),
			msg("workspace", 1, newID("workspace", WorkspaceHandle)),
			msg("done", 1),
			msg("finished", 1),
		},
	},
	WorkspaceGroupHandle: {
		Name: WorkspaceGroupHandle, Version: 1,
		Requests: []Message{
			msg("create_workspace", 1, str("workspace")),
			msg("destroy", 1),
		},
		Events: []Message{
			msg("capabilities", 1, u32("capabilities")),
			msg("output_enter", 1, obj("output", Output)),
			msg("output_leave", 1, obj("output", Output)),
			msg("workspace_enter", 1, obj("workspace", WorkspaceHandle)),
			msg("workspace_leave", 1, obj("workspace", WorkspaceHandle)),
			msg("removed", 1),
		},
	},
	WorkspaceHandle: {
		Name: WorkspaceHandle, Version: 1,
		Requests: []Message{
			msg("destroy", 1),
			msg("activate", 1),
			msg("deactivate", 1),
			msg("assign", 1, obj("workspace_group", WorkspaceGroupHandle)),
			msg("remove", 1),
		},
		Events: []Message{
			msg("id", 1, str("id")),
			msg("name", 1, str("name")),
			msg("coordinates", 1, arr("coordinates")),
			msg("state", 1, u32("state")),
			msg("capabilities", 1, u32("capabilities")),
			msg("removed", 1),
		},
	},
	CosmicWorkspaceManager: {
		Name: CosmicWorkspaceManager, Version: 2,
		Requests: []Message{
			msg("get_cosmic_workspace", 1, newID("cosmic_workspace", CosmicWorkspaceHandle), obj("workspace", WorkspaceHandle)),
			msg("destroy", 1),
		},
	},
	CosmicWorkspaceHandle: {
		Name: CosmicWorkspaceHandle, Version: 2,
		Requests: []Message{
			msg("destroy", 1),
			msg("rename", 1, str("name")),
			msg("set_tiling_state", 1, u32("state")),
			msg("pin", 1),
			msg("unpin", 1),
			msg("move_before", 1, obj("other_workspace", WorkspaceHandle), u32("axis")),
			msg("move_after", 1, obj("other_workspace", WorkspaceHandle), u32("axis")),
		},
		Events: []Message{
			msg("capabilities", 1, u32("capabilities")),
			msg("tiling_state", 1, u32("state")),
			msg("state", 2, u32("state")),
		},
	},
}
