package transport

import (
	"bufio"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/wire"
)

// compositor is a minimal in-process peer. Each sync is answered with
// the next scripted batch of messages followed by the callback.
type compositor struct {
	t        *testing.T
	conn     net.Conn
	batches  [][]wire.Message
	received chan wire.Message
}

func newCompositor(t *testing.T, batches ...[]wire.Message) (*compositor, *Conn) {
	client, server := net.Pipe()
	c := &compositor{t: t, conn: server, batches: batches, received: make(chan wire.Message, 64)}
	go c.serve()
	t.Cleanup(func() { server.Close() })
	return c, NewConn(client)
}

func (c *compositor) serve() {
	r := bufio.NewReader(c.conn)
	for {
		m, err := wire.ReadMessage(r)
		if err != nil {
			close(c.received)
			return
		}
		c.received <- m
		if m.Object != displayID || m.Opcode != 0 {
			continue
		}
		callback, _ := wire.NewDecoder(m.Body).Object()
		var batch []wire.Message
		if len(c.batches) > 0 {
			batch, c.batches = c.batches[0], c.batches[1:]
		}
		var e wire.Encoder
		e.PutUint(0)
		batch = append(batch, wire.Message{Object: callback, Opcode: 0, Body: e.Bytes()})
		for _, out := range batch {
			if err := wire.WriteMessage(c.conn, out); err != nil {
				return
			}
		}
	}
}

func global(name uint32, iface string, version uint32) wire.Message {
	var e wire.Encoder
	e.PutUint(name)
	e.PutString(iface)
	e.PutUint(version)
	return wire.Message{Object: registryID, Opcode: 0, Body: e.Bytes()}
}

func TestRoundtripDispatchesRegistryEvents(t *testing.T) {
	_, conn := newCompositor(t, []wire.Message{
		global(1, protocol.Output, 4),
		global(2, protocol.WorkspaceManager, 1),
	})

	var got []protocol.Event
	conn.SetHandler(func(ev protocol.Event) error {
		got = append(got, ev)
		return nil
	})

	n, err := conn.Roundtrip()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, got, 2)
	assert.Equal(t, protocol.RegistryGlobal{Target: protocol.Target{Object: registryID}, Name: 1, Interface: protocol.Output, Version: 4}, got[0])
}

func TestBindAndRequestAllocateIDs(t *testing.T) {
	peer, conn := newCompositor(t)

	mgr, err := conn.Bind(7, protocol.WorkspaceManager, 1)
	require.NoError(t, err)
	assert.Equal(t, wire.ObjectID(3), mgr)

	_, err = conn.Request(mgr, "commit")
	require.NoError(t, err)

	_, err = conn.Roundtrip()
	require.NoError(t, err)

	var seen []wire.Message
	for i := 0; i < 4; i++ {
		seen = append(seen, <-peer.received)
	}
	// get_registry, bind, commit, sync
	assert.Equal(t, displayID, seen[0].Object)
	assert.Equal(t, uint16(1), seen[0].Opcode)
	assert.Equal(t, registryID, seen[1].Object)
	assert.Equal(t, mgr, seen[2].Object)
	assert.Equal(t, uint16(0), seen[2].Opcode)
	assert.Equal(t, displayID, seen[3].Object)
}

func TestRequestFillsNewID(t *testing.T) {
	_, conn := newCompositor(t)
	info, err := conn.Bind(3, protocol.CosmicToplevelInfo, 2)
	require.NoError(t, err)
	foreign := conn.allocate(protocol.ForeignToplevelHandle, 1)

	created, err := conn.Request(info, "get_cosmic_toplevel", foreign)
	require.NoError(t, err)
	assert.NotZero(t, created)
	assert.Equal(t, protocol.CosmicToplevelHandle, conn.objects[created].iface)
}

func TestRequestVersionGate(t *testing.T) {
	_, conn := newCompositor(t)
	mgr, err := conn.Bind(4, protocol.CosmicToplevelManager, 2)
	require.NoError(t, err)

	_, err = conn.Request(mgr, "set_sticky", wire.ObjectID(40))
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeVersionTooOld))
}

func TestRequestUnknownObject(t *testing.T) {
	_, conn := newCompositor(t)
	_, err := conn.Request(99, "commit")
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeProtocolState))
}

func TestEventsCreateChildObjects(t *testing.T) {
	var e wire.Encoder
	e.PutObject(wire.ServerIDBase)
	child := wire.Message{Object: 3, Opcode: 1, Body: e.Bytes()}

	var name wire.Encoder
	name.PutString("Web")
	rename := wire.Message{Object: wire.ServerIDBase, Opcode: 1, Body: name.Bytes()}

	_, conn := newCompositor(t, []wire.Message{child, rename})
	_, err := conn.Bind(1, protocol.WorkspaceManager, 1)
	require.NoError(t, err)

	var got []protocol.Event
	conn.SetHandler(func(ev protocol.Event) error {
		got = append(got, ev)
		return nil
	})
	_, err = conn.Roundtrip()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, wire.ServerIDBase, got[0].(protocol.WorkspaceNew).Handle)
	assert.Equal(t, "Web", got[1].(protocol.WorkspaceName).Name)
}

func TestUnknownOpcodeIsDropped(t *testing.T) {
	_, conn := newCompositor(t, []wire.Message{{Object: registryID, Opcode: 9}})
	n, err := conn.Roundtrip()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHandlerErrorAbortsRoundtrip(t *testing.T) {
	_, conn := newCompositor(t, []wire.Message{global(1, protocol.Output, 1)})
	conn.SetHandler(func(protocol.Event) error {
		return conductorerrors.VersionTooOld(protocol.Output, 1, 2)
	})
	_, err := conn.Roundtrip()
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeVersionTooOld))
}

func TestDisplayErrorIsFatal(t *testing.T) {
	var e wire.Encoder
	e.PutObject(registryID)
	e.PutUint(0)
	e.PutString("invalid object")
	_, conn := newCompositor(t, []wire.Message{{Object: displayID, Opcode: 0, Body: e.Bytes()}})

	_, err := conn.Roundtrip()
	require.Error(t, err)
	assert.True(t, conductorerrors.Is(err, conductorerrors.ErrCodeTransport))
}

func TestSocketPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	t.Setenv("WAYLAND_DISPLAY", "")

	path, err := SocketPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultDisplay), path)

	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	path, err = SocketPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wayland-1"), path)

	path, err = SocketPath("/tmp/custom")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", path)

	t.Setenv("XDG_RUNTIME_DIR", "")
	_, err = SocketPath("wayland-2")
	assert.Error(t, err)
}
