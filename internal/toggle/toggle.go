// Package toggle flips binary relationship edges (likes, subscriptions) so
// that concurrent duplicate requests converge on a single edge.
package toggle

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/anonto42/nano-tube/backend/pkg/metrics"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// Store is the edge storage the engine drives. Insert must return
// repositories.ErrDuplicate when the edge already exists; Remove reports
// whether it deleted anything.
type Store[E any] interface {
	Exists(ctx context.Context, actorID string, edge E) (bool, error)
	Insert(ctx context.Context, actorID string, edge E) error
	Remove(ctx context.Context, actorID string, edge E) (bool, error)
}

// Engine toggles edges of one kind
type Engine[E any] struct {
	kind  string
	store Store[E]
	key   func(E) string
	group singleflight.Group
}

// New creates an engine; key must identify the edge uniquely for one actor
func New[E any](kind string, store Store[E], key func(E) string) *Engine[E] {
	return &Engine[E]{kind: kind, store: store, key: key}
}

// Toggle flips the edge between actorID and edge and returns whether it is present afterwards.
// Calls for the same pair that overlap in time share one round-trip and one result.
// The shared flip is detached from any single caller's cancellation; each caller
// stops waiting when its own ctx is done.
func (e *Engine[E]) Toggle(ctx context.Context, actorID string, edge E) (bool, error) {
	key := fmt.Sprintf("%s|%s", actorID, e.key(edge))
	flight := context.WithoutCancel(ctx)
	ch := e.group.DoChan(key, func() (interface{}, error) {
		return e.flip(flight, actorID, edge)
	})

	select {
	case <-ctx.Done():
		return false, errors.Wrap(ctx.Err(), "toggle edge")
	case res := <-ch:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	}
}

func (e *Engine[E]) flip(ctx context.Context, actorID string, edge E) (bool, error) {
	log := logger.From(ctx).WithField("edge", e.kind)

	exists, err := e.store.Exists(ctx, actorID, edge)
	if err != nil {
		return false, errors.Wrap(err, "lookup edge")
	}

	if exists {
		// a concurrent request may have removed it first; the outcome is the same
		if _, err := e.store.Remove(ctx, actorID, edge); err != nil {
			return false, errors.Wrap(err, "remove edge")
		}
		metrics.Toggles.WithLabelValues(e.kind, "off").Inc()
		return false, nil
	}

	err = e.store.Insert(ctx, actorID, edge)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrDuplicate):
		log.Debug("edge created concurrently, reporting active")
		metrics.ToggleConflicts.WithLabelValues(e.kind).Inc()
	default:
		return false, errors.Wrap(err, "insert edge")
	}
	metrics.Toggles.WithLabelValues(e.kind, "on").Inc()
	return true, nil
}
