package infrastructure

import (
	"sync"

	"bookstoreMq/internal/modules/catalog/application/port"
	"bookstoreMq/internal/modules/catalog/domain"
)

// Collection is an in-memory keyed set of entities that lists in insertion order.
// It is safe for concurrent use.
type Collection[T domain.Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func NewCollection[T domain.Entity](seed ...T) *Collection[T] {
	c := &Collection[T]{items: make(map[string]T, len(seed))}
	for _, item := range seed {
		c.Create(item)
	}
	return c
}

func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Create stores item under its id, replacing any entity already there.
// A replaced entity keeps its listing position.
func (c *Collection[T]) Create(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := item.EntityID()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
	return item
}

func (c *Collection[T]) Update(id string, patch domain.Patch[T]) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	merged := patch.Apply(current)
	c.items[id] = merged
	return merged, true
}

func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Catalog owns the author and publisher collections for the lifetime of the process.
type Catalog struct {
	Authors    *Collection[domain.Author]
	Publishers *Collection[domain.Publisher]
}

// NewCatalog builds an empty catalog, or one holding the sample entities when seed is set.
func NewCatalog(seed bool) *Catalog {
	if !seed {
		return &Catalog{
			Authors:    NewCollection[domain.Author](),
			Publishers: NewCollection[domain.Publisher](),
		}
	}
	return &Catalog{
		Authors:    NewCollection(domain.SampleAuthors()...),
		Publishers: NewCollection(domain.SamplePublishers()...),
	}
}

var (
	_ port.Repository[domain.Author]    = (*Collection[domain.Author])(nil)
	_ port.Repository[domain.Publisher] = (*Collection[domain.Publisher])(nil)
)
