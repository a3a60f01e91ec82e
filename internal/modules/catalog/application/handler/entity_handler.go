package handler

import (
	"context"
	"fmt"

	"bookstoreMq/internal/modules/catalog/application/port"
	"bookstoreMq/internal/modules/catalog/domain"
)

// entityHandler implements create, update and delete identically for every kind.
type entityHandler[T domain.Entity] struct {
	kind     domain.Kind
	repo     port.Repository[T]
	newPatch func() domain.Patch[T]
}

func NewAuthorHandler(repo port.Repository[domain.Author]) KindHandler {
	return &entityHandler[domain.Author]{
		kind:     domain.KindAuthor,
		repo:     repo,
		newPatch: func() domain.Patch[domain.Author] { return &domain.AuthorPatch{} },
	}
}

func NewPublisherHandler(repo port.Repository[domain.Publisher]) KindHandler {
	return &entityHandler[domain.Publisher]{
		kind:     domain.KindPublisher,
		repo:     repo,
		newPatch: func() domain.Patch[domain.Publisher] { return &domain.PublisherPatch{} },
	}
}

func (h *entityHandler[T]) Kind() domain.Kind { return h.kind }

func (h *entityHandler[T]) Apply(_ context.Context, env domain.Envelope) domain.Outcome {
	out := domain.Outcome{Kind: h.kind, Operation: env.Operation, EntityID: env.EntityID()}

	switch env.Operation {
	case domain.OperationCreate:
		var item T
		if err := env.DecodeData(&item); err != nil {
			return rejected(out, err)
		}
		if item.EntityID() == "" {
			return rejected(out, fmt.Errorf("%w: create without id", domain.ErrInvalidPayload))
		}
		out.EntityID = item.EntityID()
		// no uniqueness check: a colliding id replaces the stored entity
		_, existed := h.repo.Get(item.EntityID())
		h.repo.Create(item)
		out.Status = domain.StatusCreated
		if existed {
			out.Status = domain.StatusReplaced
		}
		return out

	case domain.OperationUpdate:
		patch := h.newPatch()
		if err := env.DecodeData(patch); err != nil {
			return rejected(out, err)
		}
		out.EntityID = patch.EntityID()
		if _, ok := h.repo.Update(patch.EntityID(), patch); !ok {
			return notFound(out)
		}
		out.Status = domain.StatusUpdated
		return out

	case domain.OperationDelete:
		var ref domain.DeleteData
		if err := env.DecodeData(&ref); err != nil {
			return rejected(out, err)
		}
		out.EntityID = ref.ID
		if !h.repo.Delete(ref.ID) {
			return notFound(out)
		}
		out.Status = domain.StatusDeleted
		return out

	default:
		out.Status = domain.StatusUnrecognized
		out.Err = fmt.Errorf("%w: unknown operation %q for %s", domain.ErrUnrecognizedCommand, env.Operation, h.kind)
		return out
	}
}

func rejected(out domain.Outcome, err error) domain.Outcome {
	out.Status = domain.StatusRejected
	out.Err = err
	return out
}

func notFound(out domain.Outcome) domain.Outcome {
	out.Status = domain.StatusNotFound
	out.Err = fmt.Errorf("%w: %s %q", domain.ErrNotFound, out.Kind, out.EntityID)
	return out
}
