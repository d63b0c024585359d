// Package inventory provides the application layer for the inventory
// synchronization engine: the upsert-by-name merge, delete with image
// release, and the wholesale projection load.
package inventory

import (
	"context"

	domain "github.com/aislehq/pantry/internal/domain/inventory"
	"github.com/aislehq/pantry/internal/infrastructure/monitoring"
	"github.com/aislehq/pantry/internal/ports/inbound"
	"github.com/aislehq/pantry/internal/ports/outbound"
	"github.com/aislehq/pantry/pkg/errors"
	"go.uber.org/zap"
)

// assetManager is the slice of the asset lifecycle the merge engine needs.
type assetManager interface {
	ResolveImage(ctx context.Context, cmd inbound.AddItemCommand) (string, error)
	ReleaseImage(ctx context.Context, reference string) error
}

// Service implements the inventory use cases
type Service struct {
	items   outbound.ItemRepository
	assets  assetManager
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewService creates a new inventory service
func NewService(
	items outbound.ItemRepository,
	assets assetManager,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		items:   items,
		assets:  assets,
		metrics: metrics,
		logger:  logger.Named("inventory-service"),
	}
}

// LoadState scans the inventory collection and builds a fresh projection.
func (s *Service) LoadState(ctx context.Context) (*domain.State, error) {
	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("scan inventory collection", err)
	}

	s.logger.Info("Inventory projection loaded", zap.Int("items", len(items)))
	return domain.NewState(items), nil
}

// AddItem upserts by exact name match against the projection.
//
// For an existing item the new quantity is the sum of both parsed
// quantities; only the quantity field is persisted and the image argument is
// ignored. For a new item the image is resolved first, then the full record
// is persisted and appended with the store-assigned identifier.
//
// The projection is patched only after a successful write: no optimistic
// update survives a failed persist. Two concurrent calls for the same new
// name can both observe "not found" and both insert; the name-uniqueness
// invariant is best effort, not enforced by the store.
func (s *Service) AddItem(ctx context.Context, state *domain.State, cmd inbound.AddItemCommand) (*domain.Item, error) {
	if cmd.Name == "" {
		return nil, errors.NewValidationError(domain.ErrEmptyName.Error())
	}

	quantity, err := domain.ParseQuantity(cmd.Quantity)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithMetadata("quantity", cmd.Quantity)
	}

	if existing := state.FindByName(cmd.Name); existing != nil {
		merged := existing.Quantity + quantity
		if err := s.items.UpdateQuantity(ctx, existing.ID, merged); err != nil {
			s.metrics.ItemWriteFailed()
			return nil, errors.NewPersistenceError("update item quantity", err).
				WithMetadata("item_id", existing.ID)
		}

		existing.Quantity = merged
		s.metrics.ItemMerged()

		s.logger.Info("Item quantities merged",
			zap.String("item_id", existing.ID),
			zap.String("name", existing.Name),
			zap.Int64("quantity", merged),
		)
		return existing, nil
	}

	image, err := s.assets.ResolveImage(ctx, cmd)
	if err != nil {
		return nil, err
	}

	item, err := domain.NewItem(cmd.Name, quantity, image)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	id, err := s.items.Create(ctx, item)
	if err != nil {
		s.metrics.ItemWriteFailed()
		return nil, errors.NewPersistenceError("create item", err).
			WithMetadata("name", cmd.Name)
	}

	item.ID = id
	state.Append(item)
	s.metrics.ItemCreated()

	s.logger.Info("Item created",
		zap.String("item_id", id),
		zap.String("name", item.Name),
		zap.Int64("quantity", item.Quantity),
		zap.Bool("has_image", item.Image != ""),
	)
	return item, nil
}

// DeleteItem removes the persisted record, then its bound image blob, then
// the projected entry, strictly in that order.
//
// A failed record delete leaves the projection untouched. A failed blob
// delete after a successful record delete is logged and accepted: the item
// is gone from inventory while its image stays orphaned in the blob store.
func (s *Service) DeleteItem(ctx context.Context, state *domain.State, id string) error {
	item := state.FindByID(id)
	if item == nil {
		return errors.NewNotFoundError("Item").WithMetadata("item_id", id)
	}

	if err := s.items.Delete(ctx, id); err != nil {
		s.metrics.ItemWriteFailed()
		return errors.NewPersistenceError("delete item", err).
			WithMetadata("item_id", id)
	}

	if item.Image != "" {
		if err := s.assets.ReleaseImage(ctx, item.Image); err != nil {
			// Known partial-failure window: the record is already gone.
			s.logger.Warn("Orphaned image blob left in store",
				zap.String("item_id", id),
				zap.String("image", item.Image),
				zap.Error(err),
			)
		}
	}

	state.Remove(id)
	s.metrics.ItemDeleted()

	s.logger.Info("Item deleted",
		zap.String("item_id", id),
		zap.String("name", item.Name),
	)
	return nil
}
