package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/wire"
	"github.com/grovetools/conductor/logging"
)

const (
	displayID  wire.ObjectID = 1
	registryID wire.ObjectID = 2
)

type object struct {
	iface   string
	version uint32
}

// Conn is a Transport over a Wayland Unix socket.
type Conn struct {
	conn    io.ReadWriteCloser
	reader  *bufio.Reader
	out     bytes.Buffer
	objects map[wire.ObjectID]object
	nextID  wire.ObjectID
	handler Handler
	logger  *logrus.Entry
}

// Dial connects to the compositor socket named by display (see
// SocketPath) and requests the registry.
func Dial(ctx context.Context, display string) (*Conn, error) {
	path, err := SocketPath(display)
	if err != nil {
		return nil, conductorerrors.Transport(err, "resolve socket")
	}
	var d net.Dialer
	nc, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, conductorerrors.Transport(err, "connect").WithDetail("socket", path)
	}
	c := NewConn(nc)
	c.logger.WithField("socket", path).Debug("Connected to compositor")
	return c, nil
}

// NewConn wraps an established stream and queues wl_display.get_registry.
func NewConn(rw io.ReadWriteCloser) *Conn {
	c := &Conn{
		conn:   rw,
		reader: bufio.NewReader(rw),
		objects: map[wire.ObjectID]object{
			displayID: {iface: protocol.Display, version: 1},
		},
		nextID:  registryID,
		handler: func(protocol.Event) error { return nil },
		logger:  logging.NewLogger("transport"),
	}
	// get_registry cannot fail: the display object and its schema are static.
	_, _ = c.Request(displayID, "get_registry")
	return c
}

// Registry returns the id of the wl_registry object.
func (c *Conn) Registry() wire.ObjectID { return registryID }

func (c *Conn) SetHandler(h Handler) { c.handler = h }

// Bind binds a registry global and returns the new object id.
func (c *Conn) Bind(name uint32, iface string, version uint32) (wire.ObjectID, error) {
	if _, ok := protocol.Lookup(iface); !ok {
		return 0, conductorerrors.ProtocolState("bind of unknown interface %s", iface)
	}
	id := c.allocate(iface, version)
	if err := c.queue(registryID, "bind", []any{name, protocol.UntypedNewID{Interface: iface, Version: version, ID: id}}); err != nil {
		return 0, err
	}
	c.logger.WithFields(logrus.Fields{"interface": iface, "version": version, "id": id}).Debug("Bound global")
	return id, nil
}

// Request queues a request on object. Typed new_id arguments are
// allocated here and must not appear in args.
func (c *Conn) Request(target wire.ObjectID, request string, args ...any) (wire.ObjectID, error) {
	obj, ok := c.objects[target]
	if !ok {
		return 0, conductorerrors.ProtocolState("request %s on unknown object %d", request, target)
	}
	table, _ := protocol.Lookup(obj.iface)
	_, sig, ok := table.Request(request)
	if !ok {
		return 0, conductorerrors.ProtocolState("%s has no request %s", obj.iface, request)
	}
	if sig.Since > obj.version {
		return 0, conductorerrors.VersionTooOld(obj.iface+"."+request, obj.version, sig.Since)
	}

	var created wire.ObjectID
	full := make([]any, 0, len(sig.Args))
	rest := args
	for _, spec := range sig.Args {
		if spec.Type == protocol.ArgNewID && spec.Interface != "" {
			created = c.allocate(spec.Interface, obj.version)
			full = append(full, created)
			continue
		}
		if len(rest) == 0 {
			return 0, conductorerrors.ProtocolState("%s.%s: missing argument %s", obj.iface, request, spec.Name)
		}
		full = append(full, rest[0])
		rest = rest[1:]
	}
	if len(rest) != 0 {
		return 0, conductorerrors.ProtocolState("%s.%s: %d extra arguments", obj.iface, request, len(rest))
	}
	if err := c.queue(target, request, full); err != nil {
		if created != 0 {
			delete(c.objects, created)
		}
		return 0, err
	}
	return created, nil
}

// Roundtrip flushes queued requests, then dispatches events until the
// compositor answers a wl_display.sync. It returns the number of typed
// events handed to the handler.
func (c *Conn) Roundtrip() (int, error) {
	callback, err := c.Request(displayID, "sync")
	if err != nil {
		return 0, err
	}
	if err := c.flush(); err != nil {
		return 0, err
	}

	dispatched := 0
	for {
		m, err := wire.ReadMessage(c.reader)
		if err != nil {
			return dispatched, conductorerrors.Transport(err, "read")
		}
		done, n, err := c.dispatch(m, callback)
		dispatched += n
		if err != nil {
			return dispatched, err
		}
		if done {
			return dispatched, nil
		}
	}
}

// Close flushes pending requests and closes the socket.
func (c *Conn) Close() error {
	flushErr := c.flush()
	if err := c.conn.Close(); err != nil {
		return conductorerrors.Transport(err, "close")
	}
	return flushErr
}

func (c *Conn) dispatch(m wire.Message, callback wire.ObjectID) (bool, int, error) {
	obj, ok := c.objects[m.Object]
	if !ok {
		c.logger.WithField("object", m.Object).Debug("Dropping event for destroyed object")
		return false, 0, nil
	}
	table, _ := protocol.Lookup(obj.iface)
	sig, ok := table.Event(m.Opcode)
	if !ok {
		c.logger.WithFields(logrus.Fields{"interface": obj.iface, "opcode": m.Opcode}).Debug("Dropping unknown event")
		return false, 0, nil
	}
	args, err := protocol.DecodeArgs(sig, m.Body)
	if err != nil {
		return false, 0, conductorerrors.Transport(err, "decode "+obj.iface)
	}

	switch obj.iface {
	case protocol.Display:
		return false, 0, c.displayEvent(m.Opcode, args)
	case protocol.Callback:
		delete(c.objects, m.Object)
		return m.Object == callback, 0, nil
	}

	for i, spec := range sig.Args {
		if spec.Type == protocol.ArgNewID {
			c.objects[args[i].(wire.ObjectID)] = object{iface: spec.Interface, version: obj.version}
		}
	}
	ev := protocol.NewEvent(obj.iface, m.Opcode, m.Object, args)
	if ev == nil {
		return false, 0, nil
	}
	return false, 1, c.handler(ev)
}

func (c *Conn) displayEvent(opcode uint16, args []any) error {
	switch opcode {
	case 0:
		target := args[0].(wire.ObjectID)
		iface := c.objects[target].iface
		err := fmt.Errorf("compositor error on %s@%d: code %d: %s", iface, target, args[1].(uint32), args[2].(string))
		return conductorerrors.Transport(err, "protocol error")
	case 1:
		delete(c.objects, wire.ObjectID(args[0].(uint32)))
	}
	return nil
}

func (c *Conn) allocate(iface string, version uint32) wire.ObjectID {
	id := c.nextID
	c.nextID++
	c.objects[id] = object{iface: iface, version: version}
	return id
}

func (c *Conn) queue(target wire.ObjectID, request string, args []any) error {
	obj := c.objects[target]
	table, _ := protocol.Lookup(obj.iface)
	opcode, sig, _ := table.Request(request)
	body, err := protocol.EncodeArgs(sig, args)
	if err != nil {
		return conductorerrors.Wrap(err, conductorerrors.ErrCodeProtocolState, "encode "+obj.iface+"."+request)
	}
	if err := wire.WriteMessage(&c.out, wire.Message{Object: target, Opcode: opcode, Body: body}); err != nil {
		return conductorerrors.Wrap(err, conductorerrors.ErrCodeProtocolState, "encode "+obj.iface+"."+request)
	}
	return nil
}

func (c *Conn) flush() error {
	if c.out.Len() == 0 {
		return nil
	}
	_, err := c.conn.Write(c.out.Bytes())
	c.out.Reset()
	if err != nil {
		return conductorerrors.Transport(err, "write")
	}
	return nil
}
