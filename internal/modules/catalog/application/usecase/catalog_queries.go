package usecase

import (
	"bookstoreMq/internal/modules/catalog/application/port"
	"bookstoreMq/internal/modules/catalog/domain"
)

// CatalogQueries serves the read path straight from the store, bypassing the queue.
type CatalogQueries struct {
	authors    port.Repository[domain.Author]
	publishers port.Repository[domain.Publisher]
}

func NewCatalogQueries(authors port.Repository[domain.Author], publishers port.Repository[domain.Publisher]) *CatalogQueries {
	return &CatalogQueries{authors: authors, publishers: publishers}
}

func (q *CatalogQueries) ListAuthors() []domain.Author { return q.authors.List() }

func (q *CatalogQueries) GetAuthor(id string) (domain.Author, bool) { return q.authors.Get(id) }

func (q *CatalogQueries) ListPublishers() []domain.Publisher { return q.publishers.List() }

func (q *CatalogQueries) GetPublisher(id string) (domain.Publisher, bool) {
	return q.publishers.Get(id)
}
