package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookstoreMq/internal/modules/catalog/application/port"
	"bookstoreMq/internal/modules/catalog/domain"
)

// AuthorInput is a create or update request for an author. Nil fields were not sent.
type AuthorInput struct {
	Name      *string
	Country   *string
	BirthYear *int
}

// PublisherInput is a create or update request for a publisher. Nil fields were not sent.
type PublisherInput struct {
	Name        *string
	Country     *string
	FoundedYear *int
}

// SubmitCommandUseCase turns write requests into queued commands. It never touches
// the store for writing; the returned value is the pending command data, not the
// state the store will eventually hold.
type SubmitCommandUseCase struct {
	publisher port.CommandPublisher
	queries   *CatalogQueries
	newID     func() string
}

func NewSubmitCommandUseCase(publisher port.CommandPublisher, queries *CatalogQueries) *SubmitCommandUseCase {
	return &SubmitCommandUseCase{publisher: publisher, queries: queries, newID: uuid.NewString}
}

func (uc *SubmitCommandUseCase) CreateAuthor(ctx context.Context, in AuthorInput) (domain.Author, error) {
	if blank(in.Name) || blank(in.Country) || in.BirthYear == nil || *in.BirthYear == 0 {
		return domain.Author{}, fmt.Errorf("%w: name, country and birthYear", domain.ErrMissingFields)
	}
	author := domain.Author{ID: uc.newID(), Name: *in.Name, Country: *in.Country, BirthYear: *in.BirthYear}
	return author, uc.publish(ctx, domain.KindAuthor, domain.OperationCreate, author)
}

func (uc *SubmitCommandUseCase) UpdateAuthor(ctx context.Context, id string, in AuthorInput) (domain.AuthorPatch, error) {
	if _, ok := uc.queries.GetAuthor(id); !ok {
		return domain.AuthorPatch{}, fmt.Errorf("%w: author %q", domain.ErrNotFound, id)
	}
	patch := domain.AuthorPatch{ID: id, Name: in.Name, Country: in.Country, BirthYear: in.BirthYear}
	return patch, uc.publish(ctx, domain.KindAuthor, domain.OperationUpdate, patch)
}

func (uc *SubmitCommandUseCase) DeleteAuthor(ctx context.Context, id string) (domain.DeleteData, error) {
	if _, ok := uc.queries.GetAuthor(id); !ok {
		return domain.DeleteData{}, fmt.Errorf("%w: author %q", domain.ErrNotFound, id)
	}
	ref := domain.DeleteData{ID: id}
	return ref, uc.publish(ctx, domain.KindAuthor, domain.OperationDelete, ref)
}

func (uc *SubmitCommandUseCase) CreatePublisher(ctx context.Context, in PublisherInput) (domain.Publisher, error) {
	if blank(in.Name) || blank(in.Country) || in.FoundedYear == nil || *in.FoundedYear == 0 {
		return domain.Publisher{}, fmt.Errorf("%w: name, country and foundedYear", domain.ErrMissingFields)
	}
	publisher := domain.Publisher{ID: uc.newID(), Name: *in.Name, Country: *in.Country, FoundedYear: *in.FoundedYear}
	return publisher, uc.publish(ctx, domain.KindPublisher, domain.OperationCreate, publisher)
}

func (uc *SubmitCommandUseCase) UpdatePublisher(ctx context.Context, id string, in PublisherInput) (domain.PublisherPatch, error) {
	if _, ok := uc.queries.GetPublisher(id); !ok {
		return domain.PublisherPatch{}, fmt.Errorf("%w: publisher %q", domain.ErrNotFound, id)
	}
	patch := domain.PublisherPatch{ID: id, Name: in.Name, Country: in.Country, FoundedYear: in.FoundedYear}
	return patch, uc.publish(ctx, domain.KindPublisher, domain.OperationUpdate, patch)
}

func (uc *SubmitCommandUseCase) DeletePublisher(ctx context.Context, id string) (domain.DeleteData, error) {
	if _, ok := uc.queries.GetPublisher(id); !ok {
		return domain.DeleteData{}, fmt.Errorf("%w: publisher %q", domain.ErrNotFound, id)
	}
	ref := domain.DeleteData{ID: id}
	return ref, uc.publish(ctx, domain.KindPublisher, domain.OperationDelete, ref)
}

func (uc *SubmitCommandUseCase) publish(ctx context.Context, kind domain.Kind, op domain.Operation, payload any) error {
	env, err := domain.NewEnvelope(kind, op, payload)
	if err != nil {
		return err
	}
	return uc.publisher.Publish(ctx, env)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
