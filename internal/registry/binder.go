// Package registry binds the compositor globals conductor understands.
package registry

import (
	"github.com/sirupsen/logrus"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/transport"
	"github.com/grovetools/conductor/internal/wire"
	"github.com/grovetools/conductor/logging"
)

// Global describes a known interface and the versions conductor can
// use. Multi globals are bound every time they are advertised; others
// only the first time.
type Global struct {
	Interface string
	Min, Max  uint32
	Multi     bool
}

// Known lists every interface the binder accepts.
var Known = []Global{
	{Interface: protocol.Output, Min: 2, Max: 4, Multi: true},
	{Interface: protocol.Seat, Min: 1, Max: 1},
	{Interface: protocol.ForeignToplevelList, Min: 1, Max: 1},
	{Interface: protocol.CosmicToplevelInfo, Min: 2, Max: 3},
	{Interface: protocol.CosmicToplevelManager, Min: 1, Max: 4},
	{Interface: protocol.WorkspaceManager, Min: 1, Max: 1},
	{Interface: protocol.CosmicWorkspaceManager, Min: 1, Max: 2},
}

func known(iface string) (Global, bool) {
	for _, g := range Known {
		if g.Interface == iface {
			return g, true
		}
	}
	return Global{}, false
}

// Handle is a bound global.
type Handle struct {
	ID      wire.ObjectID
	Name    uint32
	Version uint32
}

// Binder reacts to registry events by binding known globals.
type Binder struct {
	transport transport.Transport
	store     *store.Store
	handles   map[string]Handle
	gone      map[string]bool
	outputs   int
	logger    *logrus.Entry
}

// New creates a Binder. Outputs it binds are added to s.
func New(t transport.Transport, s *store.Store) *Binder {
	return &Binder{
		transport: t,
		store:     s,
		handles:   make(map[string]Handle),
		gone:      make(map[string]bool),
		logger:    logging.NewLogger("registry"),
	}
}

// BindVersion clamps an advertised version to what conductor knows.
// It fails when the advertised version is below the usable minimum.
func BindVersion(g Global, advertised uint32) (uint32, error) {
	if advertised < g.Min {
		return 0, conductorerrors.VersionTooOld(g.Interface, advertised, g.Min)
	}
	return min(advertised, g.Max), nil
}

// Global handles wl_registry.global.
func (b *Binder) Global(ev protocol.RegistryGlobal) error {
	g, ok := known(ev.Interface)
	if !ok {
		b.logger.WithField("interface", ev.Interface).Debug("Ignoring unknown global")
		return nil
	}
	if _, bound := b.handles[g.Interface]; bound && !g.Multi {
		b.logger.WithField("interface", g.Interface).Debug("Ignoring duplicate global")
		return nil
	}
	version, err := BindVersion(g, ev.Version)
	if err != nil {
		return err
	}
	id, err := b.transport.Bind(ev.Name, g.Interface, version)
	if err != nil {
		return err
	}

	b.logger.WithFields(logrus.Fields{
		"interface": g.Interface,
		"version":   version,
		"name":      ev.Name,
	}).Debug("Bound global")

	if g.Interface == protocol.Output {
		b.store.AddOutput(id, ev.Name)
		b.outputs++
		return nil
	}
	b.handles[g.Interface] = Handle{ID: id, Name: ev.Name, Version: version}
	delete(b.gone, g.Interface)
	return nil
}

// GlobalRemove handles wl_registry.global_remove. Mirrored entities are
// kept; later requests through the removed global fail.
func (b *Binder) GlobalRemove(ev protocol.RegistryGlobalRemove) {
	if o, ok := b.store.OutputByGlobal(ev.Name); ok {
		b.store.RemoveOutput(o.ID)
		b.outputs--
		b.logger.WithField("output", o.DisplayName()).Debug("Output removed")
		return
	}
	for iface, h := range b.handles {
		if h.Name == ev.Name {
			delete(b.handles, iface)
			b.gone[iface] = true
			b.logger.WithField("interface", iface).Warn("Compositor removed global")
			return
		}
	}
}

// Bound returns the handle of a singleton global if it is bound.
func (b *Binder) Bound(iface string) (Handle, bool) {
	h, ok := b.handles[iface]
	return h, ok
}

// Lookup returns the handle of a singleton global, or an error naming
// why it is unavailable. For wl_output it only reports whether any
// output is bound.
func (b *Binder) Lookup(iface string) (Handle, error) {
	if iface == protocol.Output {
		if b.outputs > 0 {
			return Handle{}, nil
		}
		return Handle{}, conductorerrors.CapabilityMissing(iface)
	}
	if h, ok := b.handles[iface]; ok {
		return h, nil
	}
	if b.gone[iface] {
		return Handle{}, conductorerrors.CapabilityGone(iface)
	}
	return Handle{}, conductorerrors.CapabilityMissing(iface)
}

// Require reports the first interface in ifaces that is not bound. It
// is meaningful once the initial registry burst has been dispatched.
func (b *Binder) Require(ifaces ...string) error {
	for _, iface := range ifaces {
		if _, err := b.Lookup(iface); err != nil {
			return err
		}
	}
	return nil
}
