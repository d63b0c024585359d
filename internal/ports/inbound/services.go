// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/aislehq/pantry/internal/domain/inventory"
)

// InventoryService defines the use cases for pantry inventory management.
// The in-memory projection is owned by the driving adapter and passed into
// each operation; on failure the projection is left exactly as it was.
type InventoryService interface {
	// LoadState scans the store and builds a fresh projection.
	LoadState(ctx context.Context) (*inventory.State, error)

	// AddItem upserts by exact name: merges quantities into an existing
	// item, or persists a new one with its resolved image.
	AddItem(ctx context.Context, state *inventory.State, cmd AddItemCommand) (*inventory.Item, error)

	// DeleteItem removes the persisted item, releases its bound image blob,
	// and drops it from the projection.
	DeleteItem(ctx context.Context, state *inventory.State, id string) error
}

// RecipeService defines the recipe suggestion use case.
type RecipeService interface {
	// GenerateRecipe produces a sanitized HTML fragment suggesting a recipe
	// from the given ingredient names.
	GenerateRecipe(ctx context.Context, ingredientNames []string) (string, error)

	// Phase reports the pipeline's current run state.
	Phase() GenerationPhase
}

// AddItemCommand contains data for adding or merging a pantry item
type AddItemCommand struct {
	Name     string
	Quantity string // numeric-looking text, parsed base-10

	// At most one of the following is set. ImageFile is a raw payload bound
	// for the blob store; ImageInline is an already-encoded data URI kept
	// verbatim.
	ImageFile   *ImageUpload
	ImageInline string
}

// ImageUpload is a raw file payload destined for the blob store
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// GenerationPhase is the recipe pipeline's run state
type GenerationPhase string

const (
	PhaseIdle       GenerationPhase = "idle"
	PhaseRequesting GenerationPhase = "requesting"
	PhaseSucceeded  GenerationPhase = "succeeded"
	PhaseFailed     GenerationPhase = "failed"
)
