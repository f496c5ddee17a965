package client

import (
	"context"
	"slices"
	"sync"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/google/uuid"
)

// Collection mirrors the caller's records of one type. Each method calls the
// API first and changes the local copy only when the call succeeds.
type Collection[T any, PT domain.ResourcePtr[T]] struct {
	api *ResourceClient[T]

	mu    sync.RWMutex
	items []T
}

func NewCollection[T any, PT domain.ResourcePtr[T]](api *ResourceClient[T]) *Collection[T, PT] {
	return &Collection[T, PT]{api: api}
}

// Items returns a copy of the mirrored records in server order.
func (c *Collection[T, PT]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T, PT]) Refresh(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *Collection[T, PT]) Add(ctx context.Context, body any) (*T, error) {
	created, err := c.api.Create(ctx, body)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.items = append(c.items, *created)
	c.mu.Unlock()
	return created, nil
}

func (c *Collection[T, PT]) Edit(ctx context.Context, id uuid.UUID, body any) (*T, error) {
	updated, err := c.api.Update(ctx, id, body)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = *updated
	}
	c.mu.Unlock()
	return updated, nil
}

func (c *Collection[T, PT]) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.api.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
	c.mu.Unlock()
	return nil
}

// Find returns the local copy of the record with id.
func (c *Collection[T, PT]) Find(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Collection[T, PT]) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(c.items, func(item T) bool {
		return PT(&item).Ownership().ID == id
	})
}
