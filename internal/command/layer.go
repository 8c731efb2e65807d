// Package command implements conductor's user-level operations on top of
// a converged session: listing, resolving and mutating entities.
package command

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/conductor/internal/engine"
	"github.com/grovetools/conductor/internal/mutate"
	"github.com/grovetools/conductor/internal/protocol"
	"github.com/grovetools/conductor/internal/store"
	"github.com/grovetools/conductor/logging"
)

// Layer runs commands against one session.
type Layer struct {
	session  *engine.Session
	requests *mutate.Requester
	ulog     *logging.UnifiedLogger
	logger   *logrus.Entry
}

// New creates a Layer over s.
func New(s *engine.Session) *Layer {
	return &Layer{
		session:  s,
		requests: mutate.New(s.Transport, s.Binder, s.Store),
		ulog:     logging.NewUnifiedLogger("command"),
		logger:   logging.NewLogger("command"),
	}
}

// globals each class is served by
var classGlobals = map[store.Class][]string{
	store.ClassOutputs:    {protocol.Output},
	store.ClassToplevels:  {protocol.ForeignToplevelList, protocol.CosmicToplevelInfo},
	store.ClassWorkspaces: {protocol.WorkspaceManager},
}

// prepare converges the required classes, plus the optional ones whose
// globals the compositor advertises, and returns a snapshot.
func (l *Layer) prepare(ctx context.Context, required []store.Class, optional ...store.Class) (store.Snapshot, error) {
	if err := l.session.Bootstrap(ctx); err != nil {
		return store.Snapshot{}, err
	}
	classes := make([]store.Class, 0, len(required)+len(optional))
	for _, c := range required {
		if err := l.session.Binder.Require(classGlobals[c]...); err != nil {
			return store.Snapshot{}, err
		}
		classes = append(classes, c)
	}
	for _, c := range optional {
		if err := l.session.Binder.Require(classGlobals[c]...); err != nil {
			l.logger.WithField("class", c.String()).Debug("Skipping unavailable class")
			continue
		}
		classes = append(classes, c)
	}
	if err := l.session.Converge(ctx, classes...); err != nil {
		return store.Snapshot{}, err
	}
	return l.session.Store.Snapshot(), nil
}

func classes(c ...store.Class) []store.Class { return c }

// warn reports a soft condition to the user. The command still succeeds.
func (l *Layer) warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.ulog.Warn(msg).Fields(fields).Log(ctx)
}
