package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/conductor/internal/wire"
)

func TestRequestOpcodes(t *testing.T) {
	tests := []struct {
		iface   string
		request string
		opcode  uint16
	}{
		{Display, "sync", 0},
		{Display, "get_registry", 1},
		{Registry, "bind", 0},
		{CosmicToplevelInfo, "get_cosmic_toplevel", 1},
		{CosmicToplevelManager, "activate", 2},
		{CosmicToplevelManager, "set_fullscreen", 7},
		{CosmicToplevelManager, "set_sticky", 11},
		{CosmicToplevelManager, "move_to_ext_workspace", 13},
		{WorkspaceManager, "commit", 0},
		{WorkspaceHandle, "activate", 1},
		{CosmicWorkspaceManager, "get_cosmic_workspace", 0},
		{CosmicWorkspaceHandle, "set_tiling_state", 2},
		{CosmicWorkspaceHandle, "move_before", 5},
		{CosmicWorkspaceHandle, "move_after", 6},
	}
	for _, tt := range tests {
		t.Run(tt.iface+"."+tt.request, func(t *testing.T) {
			table, ok := Lookup(tt.iface)
			require.True(t, ok)
			op, _, ok := table.Request(tt.request)
			require.True(t, ok)
			assert.Equal(t, tt.opcode, op)
		})
	}
}

func TestEncodeBind(t *testing.T) {
	table, _ := Lookup(Registry)
	_, sig, _ := table.Request("bind")

	body, err := EncodeArgs(sig, []any{uint32(5), UntypedNewID{Interface: "wl_output", Version: 4, ID: 9}})
	require.NoError(t, err)

	d := wire.NewDecoder(body)
	name, _ := d.Uint()
	iface, _, _ := d.String()
	version, _ := d.Uint()
	id, _ := d.Object()
	assert.Equal(t, uint32(5), name)
	assert.Equal(t, "wl_output", iface)
	assert.Equal(t, uint32(4), version)
	assert.Equal(t, wire.ObjectID(9), id)
	assert.Zero(t, d.Remaining())
}

func TestEncodeArgsValidation(t *testing.T) {
	table, _ := Lookup(CosmicToplevelManager)

	_, sig, _ := table.Request("close")
	_, err := EncodeArgs(sig, []any{})
	assert.Error(t, err)

	_, err = EncodeArgs(sig, []any{uint32(3)})
	assert.Error(t, err)

	_, err = EncodeArgs(sig, []any{wire.ObjectID(0)})
	assert.ErrorIs(t, err, wire.ErrNullNotAllowed)

	_, sig, _ = table.Request("set_fullscreen")
	_, err = EncodeArgs(sig, []any{wire.ObjectID(4), wire.ObjectID(0)})
	assert.NoError(t, err)
}

func TestDecodeOutputGeometry(t *testing.T) {
	var e wire.Encoder
	for _, v := range []int32{0, 0, 600, 340, 0} {
		e.PutInt(v)
	}
	e.PutString("Dell")
	e.PutString("U2720Q")
	e.PutInt(TransformNormal)

	ev, err := Decode(Output, wire.Message{Object: 12, Opcode: 0, Body: e.Bytes()})
	require.NoError(t, err)

	geom, ok := ev.(OutputGeometry)
	require.True(t, ok)
	assert.Equal(t, wire.ObjectID(12), geom.Source())
	assert.Equal(t, "Dell", geom.Make)
	assert.Equal(t, "U2720Q", geom.Model)
	assert.Equal(t, int32(600), geom.PhysicalWidth)
}

func TestDecodeToplevelState(t *testing.T) {
	var e wire.Encoder
	e.PutArray(wire.ArrayOf(ToplevelStateActivated, ToplevelStateMaximized))

	ev, err := Decode(CosmicToplevelHandle, wire.Message{Object: 30, Opcode: 8, Body: e.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 0}, ev.(CosmicToplevelState).States)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, err := Decode(WorkspaceHandle, wire.Message{Object: 3, Opcode: 42})
	var unknown *ErrUnknownOpcode
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint16(42), unknown.Opcode)
}

func TestDecodeTrailingBytes(t *testing.T) {
	var e wire.Encoder
	e.PutUint(1)
	e.PutUint(2)
	_, err := Decode(WorkspaceHandle, wire.Message{Object: 3, Opcode: 3, Body: e.Bytes()})
	assert.Error(t, err)
}

func TestCallbackHasNoTypedEvent(t *testing.T) {
	var e wire.Encoder
	e.PutUint(0)
	_, err := Decode(Callback, wire.Message{Object: 3, Opcode: 0, Body: e.Bytes()})
	assert.Error(t, err)
}
