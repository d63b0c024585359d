// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/aislehq/pantry/internal/domain/inventory"
)

// ItemRepository defines the interface for inventory document persistence.
// Identifiers are assigned by the store on creation.
type ItemRepository interface {
	// FindAll performs a wholesale scan of the inventory collection.
	FindAll(ctx context.Context) ([]*inventory.Item, error)

	// Create persists a new item and returns the store-assigned identifier.
	Create(ctx context.Context, item *inventory.Item) (string, error)

	// UpdateQuantity persists only the quantity field of an existing item.
	UpdateQuantity(ctx context.Context, id string, quantity int64) error

	// Delete removes the item document by identifier.
	Delete(ctx context.Context, id string) error
}

// BlobStorage defines the interface for image blob persistence.
type BlobStorage interface {
	// Upload stores the payload at the given path and returns the durable
	// retrieval URL.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)

	// Delete removes the blob previously returned from Upload, addressed by
	// its retrieval URL.
	Delete(ctx context.Context, url string) error
}

// CompletionService defines the interface for the remote text-completion API.
type CompletionService interface {
	// Complete sends a single user-role prompt and returns the first
	// choice's message text.
	Complete(ctx context.Context, prompt string) (string, error)
}
