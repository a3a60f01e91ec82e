package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstoreMq/internal/modules/catalog/domain"
	"bookstoreMq/internal/modules/catalog/infrastructure"
)

type capturePublisher struct {
	sent []domain.Envelope
	err  error
}

func (p *capturePublisher) Publish(_ context.Context, env domain.Envelope) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, env)
	return nil
}

func ptr[T any](v T) *T { return &v }

func newSubmit(t *testing.T) (*SubmitCommandUseCase, *capturePublisher, *infrastructure.Catalog) {
	t.Helper()
	catalog := infrastructure.NewCatalog(true)
	pub := &capturePublisher{}
	uc := NewSubmitCommandUseCase(pub, NewCatalogQueries(catalog.Authors, catalog.Publishers))
	uc.newID = func() string { return "generated" }
	return uc, pub, catalog
}

func TestCreateAuthorPublishesWithoutTouchingStore(t *testing.T) {
	uc, pub, catalog := newSubmit(t)

	author, err := uc.CreateAuthor(context.Background(), AuthorInput{Name: ptr("N"), Country: ptr("C"), BirthYear: ptr(1950)})
	require.NoError(t, err)

	assert.Equal(t, domain.Author{ID: "generated", Name: "N", Country: "C", BirthYear: 1950}, author)
	require.Len(t, pub.sent, 1)
	assert.Equal(t, domain.KindAuthor, pub.sent[0].Type)
	assert.Equal(t, domain.OperationCreate, pub.sent[0].Operation)
	assert.JSONEq(t, `{"id":"generated","name":"N","country":"C","birthYear":1950}`, string(pub.sent[0].Data))
	_, stored := catalog.Authors.Get("generated")
	assert.False(t, stored)
}

func TestCreateRequiresFields(t *testing.T) {
	uc, pub, _ := newSubmit(t)

	_, err := uc.CreateAuthor(context.Background(), AuthorInput{Name: ptr("N"), Country: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	_, err = uc.CreatePublisher(context.Background(), PublisherInput{Name: ptr("P"), Country: ptr("X"), FoundedYear: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	assert.Empty(t, pub.sent)
}

func TestCreateUsesRandomIDs(t *testing.T) {
	catalog := infrastructure.NewCatalog(false)
	pub := &capturePublisher{}
	uc := NewSubmitCommandUseCase(pub, NewCatalogQueries(catalog.Authors, catalog.Publishers))
	in := PublisherInput{Name: ptr("P"), Country: ptr("X"), FoundedYear: ptr(1900)}

	a, err := uc.CreatePublisher(context.Background(), in)
	require.NoError(t, err)
	b, err := uc.CreatePublisher(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdateCarriesOnlyProvidedFields(t *testing.T) {
	uc, pub, _ := newSubmit(t)

	patch, err := uc.UpdateAuthor(context.Background(), "1", AuthorInput{Country: ptr("D")})
	require.NoError(t, err)

	assert.Equal(t, "1", patch.ID)
	require.Len(t, pub.sent, 1)
	assert.JSONEq(t, `{"id":"1","country":"D"}`, string(pub.sent[0].Data))
}

func TestUpdateAndDeleteRequireExistingID(t *testing.T) {
	uc, pub, _ := newSubmit(t)

	_, err := uc.UpdatePublisher(context.Background(), "404", PublisherInput{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.DeleteAuthor(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, pub.sent)
}

func TestDeletePublishesIDOnly(t *testing.T) {
	uc, pub, _ := newSubmit(t)

	ref, err := uc.DeletePublisher(context.Background(), "2")
	require.NoError(t, err)

	assert.Equal(t, domain.DeleteData{ID: "2"}, ref)
	assert.JSONEq(t, `{"id":"2"}`, string(pub.sent[0].Data))
}

func TestPublishErrorPropagates(t *testing.T) {
	uc, pub, _ := newSubmit(t)
	pub.err = errors.New("channel closed")

	_, err := uc.DeleteAuthor(context.Background(), "1")
	assert.EqualError(t, err, "channel closed")
}

func TestQueriesReadStoreDirectly(t *testing.T) {
	catalog := infrastructure.NewCatalog(true)
	q := NewCatalogQueries(catalog.Authors, catalog.Publishers)

	assert.Equal(t, domain.SampleAuthors(), q.ListAuthors())
	assert.Equal(t, domain.SamplePublishers(), q.ListPublishers())
	a, ok := q.GetAuthor("3")
	assert.True(t, ok)
	assert.Equal(t, "Jorge Luis Borges", a.Name)
	_, ok = q.GetPublisher("nope")
	assert.False(t, ok)
}
