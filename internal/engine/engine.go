// Package engine drives round-trips against the compositor until the
// mirrored state needed by a command is complete.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/applier"
	"github.com/grovetools/conductor/internal/registry"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/internal/transport"
	"github.com/grovetools/conductor/logging"
)

const (
	DefaultInitialDelay = 20 * time.Millisecond
	DefaultMaxDelay     = 200 * time.Millisecond
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Options tunes convergence. Zero values select the defaults; a zero
// Timeout waits without bound.
type Options struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Timeout      time.Duration
	Sleep        Sleeper
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.InitialDelay <= 0 {
		o.InitialDelay = DefaultInitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = DefaultMaxDelay
	}
	if o.MaxDelay < o.InitialDelay {
		o.MaxDelay = o.InitialDelay
	}
	if o.Sleep == nil {
		o.Sleep = Sleep
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session is one connection's worth of mirrored state.
type Session struct {
	Transport transport.Transport
	Store     *store.Store
	Binder    *registry.Binder

	opts         Options
	bootstrapped bool
	logger       *logrus.Entry
}

// NewSession wires a store, binder and applier onto t.
func NewSession(t transport.Transport, opts Options) *Session {
	s := store.New()
	b := registry.New(t, s)
	t.SetHandler(applier.New(t, s, b).Apply)
	return &Session{
		Transport: t,
		Store:     s,
		Binder:    b,
		opts:      opts.withDefaults(),
		logger:    logging.NewLogger("engine"),
	}
}

// Connect dials the compositor and returns a session over it.
func Connect(ctx context.Context, display string, opts Options) (*Session, error) {
	conn, err := transport.Dial(ctx, display)
	if err != nil {
		return nil, err
	}
	return NewSession(conn, opts), nil
}

// Roundtrip performs one round-trip, resetting the store's per-round
// bookkeeping first.
func (s *Session) Roundtrip() (int, error) {
	s.Store.RoundtripStarted()
	n, err := s.Transport.Roundtrip()
	if err != nil {
		var ce *conductorerrors.ConductorError
		if errors.As(err, &ce) {
			return n, err
		}
		return n, conductorerrors.Transport(err, "roundtrip")
	}
	return n, nil
}

// Bootstrap dispatches the initial registry burst so globals are bound.
// It is idempotent.
func (s *Session) Bootstrap(ctx context.Context) error {
	if s.bootstrapped {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.Roundtrip(); err != nil {
		return err
	}
	s.bootstrapped = true
	return nil
}

// Require bootstraps and then checks that the compositor advertised
// every interface in ifaces.
func (s *Session) Require(ctx context.Context, ifaces ...string) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}
	return s.Binder.Require(ifaces...)
}

// Converge round-trips until every class is complete. The retry delay
// doubles after each round-trip that delivered no events, up to
// MaxDelay, and is never reset.
func (s *Session) Converge(ctx context.Context, classes ...store.Class) error {
	if err := s.Bootstrap(ctx); err != nil {
		return err
	}

	start := s.opts.Now()
	delay := s.opts.InitialDelay
	count := 0
	for {
		pending := s.pending(classes)
		if len(pending) == 0 {
			s.logger.WithField("roundtrips", count).Debug("Converged")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return conductorerrors.Wrap(err, conductorerrors.ErrCodeConvergenceTimeout, "convergence cancelled")
		}
		if s.opts.Timeout > 0 && s.opts.Now().Sub(start) >= s.opts.Timeout {
			return conductorerrors.ConvergenceTimeout(s.opts.Timeout, pending)
		}

		n, err := s.Roundtrip()
		count++
		if err != nil {
			return err
		}
		if n == 0 {
			s.logger.WithField("delay", delay).Trace("Roundtrip sleep")
			if err := s.opts.Sleep(ctx, delay); err != nil {
				return conductorerrors.Wrap(err, conductorerrors.ErrCodeConvergenceTimeout, "convergence cancelled")
			}
			delay = min(delay*2, s.opts.MaxDelay)
		}
	}
}

func (s *Session) pending(classes []store.Class) []string {
	var out []string
	for _, c := range classes {
		if !s.Store.Complete(c) {
			out = append(out, c.String())
		}
	}
	return out
}

// Finish flushes queued requests with a final round-trip and waits for
// the compositor to process them.
func (s *Session) Finish() error {
	_, err := s.Roundtrip()
	return err
}

// Close releases the transport.
func (s *Session) Close() error {
	return s.Transport.Close()
}
