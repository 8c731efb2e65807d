// Package transport carries requests and events between conductor and
// the compositor.
package transport

import (
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/wire"
)

// Handler receives every typed event dispatched during a round-trip. A
// non-nil error aborts the round-trip and is returned from Roundtrip.
type Handler func(protocol.Event) error

// Transport is the connection to the compositor as seen by the engine.
//
// Requests are queued and flushed by the next Roundtrip. Request fills
// typed new_id arguments itself and returns the allocated id, or zero
// when the request creates no object.
type Transport interface {
	Bind(name uint32, iface string, version uint32) (wire.ObjectID, error)
	Roundtrip() (int, error)
	Request(object wire.ObjectID, request string, args ...any) (wire.ObjectID, error)
	SetHandler(h Handler)
	Close() error
}
