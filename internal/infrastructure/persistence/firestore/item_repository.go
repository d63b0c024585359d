// Package firestore implements the inventory document store adapter on
// Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/aislehq/pantry/internal/domain/inventory"
	"github.com/aislehq/pantry/internal/infrastructure/config"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// itemDoc is the persisted document shape in the inventory collection.
type itemDoc struct {
	Name     string `firestore:"name"`
	Quantity int64  `firestore:"quantity"`
	Image    string `firestore:"image,omitempty"`
}

// ItemRepository implements outbound.ItemRepository over a Firestore
// collection. Document identifiers are store-assigned on creation.
type ItemRepository struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

// NewClient creates a Firestore client from configuration
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return client, nil
}

// NewItemRepository creates a new Firestore-backed item repository
func NewItemRepository(client *firestore.Client, collection string, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		client:     client,
		collection: collection,
		logger:     logger.Named("firestore"),
	}
}

// FindAll scans the whole inventory collection in document order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*inventory.Item, error) {
	iter := r.client.Collection(r.collection).Documents(ctx)
	defer iter.Stop()

	var items []*inventory.Item
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection %q: %w", r.collection, err)
		}

		var doc itemDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %q: %w", snap.Ref.ID, err)
		}

		items = append(items, &inventory.Item{
			ID:       snap.Ref.ID,
			Name:     doc.Name,
			Quantity: doc.Quantity,
			Image:    doc.Image,
		})
	}

	return items, nil
}

// Create persists a new item and returns the store-assigned identifier.
func (r *ItemRepository) Create(ctx context.Context, item *inventory.Item) (string, error) {
	ref, _, err := r.client.Collection(r.collection).Add(ctx, itemDoc{
		Name:     item.Name,
		Quantity: item.Quantity,
		Image:    item.Image,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	r.logger.Debug("Document created", zap.String("id", ref.ID))
	return ref.ID, nil
}

// UpdateQuantity persists only the quantity field of an existing document.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	_, err := r.client.Collection(r.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "quantity", Value: quantity},
	})
	if err != nil {
		return fmt.Errorf("failed to update document %q: %w", id, err)
	}

	return nil
}

// Delete removes the document by identifier.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(r.collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", id, err)
	}

	return nil
}
