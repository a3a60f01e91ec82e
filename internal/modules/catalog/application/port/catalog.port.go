package port

import (
	"context"

	"bookstoreMq/internal/modules/catalog/domain"
)

// Repository is the store contract for one entity kind. Every operation is total:
// absence is reported through the bool results, never through an error.
type Repository[T domain.Entity] interface {
	List() []T
	Get(id string) (T, bool)
	Create(item T) T
	Update(id string, patch domain.Patch[T]) (T, bool)
	Delete(id string) bool
}

// CommandPublisher places write commands on the durable queue.
type CommandPublisher interface {
	Publish(ctx context.Context, env domain.Envelope) error
}

// OutcomeObserver receives the result of every applied or dropped command.
type OutcomeObserver interface {
	Observe(ctx context.Context, outcome domain.Outcome)
}
