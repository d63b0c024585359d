// Package memory provides in-memory adapter implementations for local
// development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/aislehq/pantry/internal/domain/inventory"
	"github.com/google/uuid"
)

// ItemRepository implements outbound.ItemRepository with an in-process map.
// Identifiers are assigned on creation, like the document store would.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[string]*inventory.Item
	order []string
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		items: make(map[string]*inventory.Item),
	}
}

// FindAll returns all items in insertion order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*inventory.Item, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.items[id]
		items = append(items, &copied)
	}

	return items, nil
}

// Create stores a copy of the item under a fresh identifier.
func (r *ItemRepository) Create(ctx context.Context, item *inventory.Item) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	copied := *item
	copied.ID = id

	r.items[id] = &copied
	r.order = append(r.order, id)
	return id, nil
}

// UpdateQuantity overwrites only the quantity field.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return inventory.ErrItemNotFound
	}

	item.Quantity = quantity
	return nil
}

// Delete removes the item by identifier.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return inventory.ErrItemNotFound
	}

	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}
