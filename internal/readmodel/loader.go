package readmodel

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// Load is one delivery from a Loader.
type Load[T any] struct {
	Value T
	Err   error
}

// Loader runs a read off the caller's goroutine and runs it again every time
// one of its resources is published. At most one fetch is in flight.
type Loader[T any] struct {
	name      string
	hub       *notify.Hub
	resources []notify.Resource
	fetch     func(ctx context.Context) (T, error)
	logger    logger.ZapLogger
}

func NewLoader[T any](name string, hub *notify.Hub, resources []notify.Resource, fetch func(ctx context.Context) (T, error), log logger.ZapLogger) *Loader[T] {
	return &Loader[T]{
		name:      name,
		hub:       hub,
		resources: resources,
		fetch:     fetch,
		logger:    log,
	}
}

// Start delivers the first load and then one load per invalidation until ctx
// is done. Cancelling ctx stops delivery; a fetch already running finishes
// and its result is dropped. The channel is closed on exit.
func (l *Loader[T]) Start(ctx context.Context) <-chan Load[T] {
	out := make(chan Load[T])
	sub := l.hub.Subscribe(l.resources...)

	go func() {
		defer close(out)
		defer l.hub.Unsubscribe(sub)

		runCtx := context.WithoutCancel(ctx)
		for {
			v, err := l.fetch(runCtx)
			if err != nil {
				l.logger.Warn("loader fetch failed", zap.String("loader", l.name), zap.Error(err))
			}

			select {
			case out <- Load[T]{Value: v, Err: err}:
			case <-ctx.Done():
				return
			}

			select {
			case _, ok := <-sub.C:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
