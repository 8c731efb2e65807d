package testutil

import (
	"fmt"

	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/transport"
	"github.com/grovetools/conductor/internal/wire"
)

// Call is a request recorded by FakeTransport. Args excludes the typed
// new_id arguments the transport allocated; Created holds that id.
type Call struct {
	Object    wire.ObjectID
	Interface string
	Request   string
	Args      []any
	Created   wire.ObjectID
}

func (c Call) String() string {
	return fmt.Sprintf("%s@%d.%s%v", c.Interface, c.Object, c.Request, c.Args)
}

// BindCall is a registry bind recorded by FakeTransport.
type BindCall struct {
	Name      uint32
	Interface string
	Version   uint32
	ID        wire.ObjectID
}

type fakeObject struct {
	iface   string
	version uint32
}

// FakeTransport implements transport.Transport in memory. Events passed
// to Emit are dispatched by the next Roundtrip; Script adds batches that
// are dispatched one per Roundtrip after those.
type FakeTransport struct {
	handler transport.Handler
	objects map[wire.ObjectID]fakeObject
	nextID  wire.ObjectID
	nextSrv wire.ObjectID

	pending []protocol.Event
	script  [][]protocol.Event

	calls      []Call
	binds      []BindCall
	roundtrips int

	// RoundtripErr, when set, is returned by every Roundtrip.
	RoundtripErr error
	// OnBind and OnRequest observe traffic as it is issued.
	OnBind    func(BindCall)
	OnRequest func(Call)
	Closed    bool
}

var _ transport.Transport = (*FakeTransport)(nil)

// NewFakeTransport returns a transport whose registry is object 2,
// matching a real connection.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		handler: func(protocol.Event) error { return nil },
		objects: map[wire.ObjectID]fakeObject{
			1: {iface: protocol.Display, version: 1},
			2: {iface: protocol.Registry, version: 1},
		},
		nextID:  3,
		nextSrv: wire.ServerIDBase,
	}
}

// RegistryID is the object id of the registry.
const RegistryID wire.ObjectID = 2

func (f *FakeTransport) SetHandler(h transport.Handler) { f.handler = h }

func (f *FakeTransport) Bind(name uint32, iface string, version uint32) (wire.ObjectID, error) {
	if _, ok := protocol.Lookup(iface); !ok {
		return 0, fmt.Errorf("bind of unknown interface %s", iface)
	}
	id := f.nextID
	f.nextID++
	f.objects[id] = fakeObject{iface: iface, version: version}
	call := BindCall{Name: name, Interface: iface, Version: version, ID: id}
	f.binds = append(f.binds, call)
	if f.OnBind != nil {
		f.OnBind(call)
	}
	return id, nil
}

func (f *FakeTransport) Request(target wire.ObjectID, request string, args ...any) (wire.ObjectID, error) {
	obj, ok := f.objects[target]
	if !ok {
		return 0, fmt.Errorf("request %s on unknown object %d", request, target)
	}
	table, _ := protocol.Lookup(obj.iface)
	_, sig, ok := table.Request(request)
	if !ok {
		return 0, fmt.Errorf("%s has no request %s", obj.iface, request)
	}
	if sig.Since > obj.version {
		return 0, fmt.Errorf("%s.%s needs version %d, bound %d", obj.iface, request, sig.Since, obj.version)
	}

	var created wire.ObjectID
	want := 0
	for _, a := range sig.Args {
		if a.Type == protocol.ArgNewID && a.Interface != "" {
			created = f.nextID
			f.nextID++
			f.objects[created] = fakeObject{iface: a.Interface, version: obj.version}
			continue
		}
		want++
	}
	if len(args) != want {
		return 0, fmt.Errorf("%s.%s: expected %d arguments, got %d", obj.iface, request, want, len(args))
	}

	call := Call{Object: target, Interface: obj.iface, Request: request, Args: args, Created: created}
	f.calls = append(f.calls, call)
	if f.OnRequest != nil {
		f.OnRequest(call)
	}
	return created, nil
}

func (f *FakeTransport) Roundtrip() (int, error) {
	f.roundtrips++
	if f.RoundtripErr != nil {
		return 0, f.RoundtripErr
	}
	batch := f.pending
	f.pending = nil
	if len(f.script) > 0 {
		batch = append(batch, f.script[0]...)
		f.script = f.script[1:]
	}
	for i, ev := range batch {
		if err := f.handler(ev); err != nil {
			return i + 1, err
		}
	}
	return len(batch), nil
}

func (f *FakeTransport) Close() error {
	f.Closed = true
	return nil
}

// Emit queues events for the next Roundtrip.
func (f *FakeTransport) Emit(events ...protocol.Event) {
	f.pending = append(f.pending, events...)
}

// Script appends one batch per argument; each Roundtrip consumes one.
// An empty batch models a round-trip that delivers nothing.
func (f *FakeTransport) Script(batches ...[]protocol.Event) {
	f.script = append(f.script, batches...)
}

// NewServerObject allocates a compositor-side object id.
func (f *FakeTransport) NewServerObject(iface string, version uint32) wire.ObjectID {
	id := f.nextSrv
	f.nextSrv++
	f.objects[id] = fakeObject{iface: iface, version: version}
	return id
}

// Interface returns the interface of a known object.
func (f *FakeTransport) Interface(id wire.ObjectID) string { return f.objects[id].iface }

// Version returns the version of a known object.
func (f *FakeTransport) Version(id wire.ObjectID) uint32 { return f.objects[id].version }

func (f *FakeTransport) Calls() []Call       { return f.calls }
func (f *FakeTransport) Binds() []BindCall   { return f.binds }
func (f *FakeTransport) RoundtripCount() int { return f.roundtrips }
func (f *FakeTransport) ResetCalls()         { f.calls = nil }

// Requests returns the recorded calls of one request name.
func (f *FakeTransport) Requests(name string) []Call {
	var out []Call
	for _, c := range f.calls {
		if c.Request == name {
			out = append(out, c)
		}
	}
	return out
}

// Mutations returns recorded calls other than secondary-handle lookups.
func (f *FakeTransport) Mutations() []Call {
	var out []Call
	for _, c := range f.calls {
		if c.Request == "get_cosmic_toplevel" || c.Request == "get_cosmic_workspace" {
			continue
		}
		out = append(out, c)
	}
	return out
}
