package handler

import (
	"context"
	"fmt"

	"bookstoreMq/internal/modules/catalog/application/port"
	"bookstoreMq/internal/modules/catalog/domain"
)

// KindHandler applies the commands addressed to one entity kind.
type KindHandler interface {
	Kind() domain.Kind
	Apply(ctx context.Context, env domain.Envelope) domain.Outcome
}

// Dispatcher routes queued commands to the handler registered for their kind and
// reports every outcome to the observer. It never fails, so the queue client can
// always acknowledge the delivery.
type Dispatcher struct {
	handlers map[domain.Kind]KindHandler
	observer port.OutcomeObserver
}

func NewDispatcher(observer port.OutcomeObserver, handlers ...KindHandler) *Dispatcher {
	d := &Dispatcher{handlers: make(map[domain.Kind]KindHandler, len(handlers)), observer: observer}
	for _, h := range handlers {
		d.Register(h)
	}
	return d
}

// NewCatalogDispatcher wires the author and publisher handlers over the given repositories.
func NewCatalogDispatcher(authors port.Repository[domain.Author], publishers port.Repository[domain.Publisher], observer port.OutcomeObserver) *Dispatcher {
	return NewDispatcher(observer, NewAuthorHandler(authors), NewPublisherHandler(publishers))
}

func (d *Dispatcher) Register(h KindHandler) {
	d.handlers[h.Kind()] = h
}

// Apply routes env and returns what happened without notifying the observer.
func (d *Dispatcher) Apply(ctx context.Context, env domain.Envelope) domain.Outcome {
	h, ok := d.handlers[env.Type]
	if !ok {
		return domain.Outcome{
			Kind:      env.Type,
			Operation: env.Operation,
			EntityID:  env.EntityID(),
			Status:    domain.StatusUnrecognized,
			Err:       fmt.Errorf("%w: unknown type %q", domain.ErrUnrecognizedCommand, env.Type),
		}
	}
	return h.Apply(ctx, env)
}

// Handle applies env and reports the outcome. It matches broker.Handler and always returns nil.
func (d *Dispatcher) Handle(ctx context.Context, env domain.Envelope) error {
	outcome := d.Apply(ctx, env)
	if d.observer != nil {
		d.observer.Observe(ctx, outcome)
	}
	return nil
}
