// Package handlers provides the HTTP presentation adapter over the pantry
// core. It owns the in-memory inventory projection and passes it into the
// merge engine's operations.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/aislehq/pantry/internal/domain/inventory"
	"github.com/aislehq/pantry/internal/ports/inbound"
	apperrors "github.com/aislehq/pantry/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxImageBytes caps uploaded image payloads.
const maxImageBytes = 8 << 20

// InventoryAPI handles inventory and recipe suggestion requests.
//
// The projection is loaded wholesale on startup and patched by the merge
// engine after each successful mutation. Handler access is serialized with a
// mutex so concurrent requests cannot corrupt the projection; the remote
// store's name uniqueness stays best effort regardless, since other clients
// write to the same collection.
type InventoryAPI struct {
	inventorySvc inbound.InventoryService
	recipeSvc    inbound.RecipeService
	validate     *validator.Validate
	logger       *zap.Logger

	mu    sync.Mutex
	state *inventory.State
}

// NewInventoryAPI creates the handler set with a freshly loaded projection.
func NewInventoryAPI(
	inventorySvc inbound.InventoryService,
	recipeSvc inbound.RecipeService,
	logger *zap.Logger,
) *InventoryAPI {
	return &InventoryAPI{
		inventorySvc: inventorySvc,
		recipeSvc:    recipeSvc,
		validate:     validator.New(),
		logger:       logger.Named("inventory-api"),
	}
}

// Register attaches the API routes to the router group.
func (h *InventoryAPI) Register(rg *gin.RouterGroup) {
	rg.GET("/items", h.ListItems)
	rg.POST("/items", h.AddItem)
	rg.DELETE("/items/:id", h.DeleteItem)
	rg.POST("/recipes/suggestions", h.SuggestRecipe)
}

// LoadState builds the initial projection; called once at startup.
func (h *InventoryAPI) LoadState(ctx context.Context) error {
	state, err := h.inventorySvc.LoadState(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.state = state
	h.mu.Unlock()
	return nil
}

// AddItemRequest represents the add-item payload
type AddItemRequest struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Quantity string `form:"quantity" json:"quantity" validate:"required"`
	// Image carries an inline-encoded payload; a raw file arrives as the
	// multipart "image" file part instead.
	Image string `form:"image_inline" json:"image,omitempty"`
}

// ListItems handles GET /api/v1/items?search=
func (h *InventoryAPI) ListItems(c *gin.Context) {
	term := c.Query("search")

	h.mu.Lock()
	items := inventory.Filter(h.state.Items(), term)
	// Copy out before unlocking so marshaling reads a stable view.
	view := make([]inventory.Item, len(items))
	for i, item := range items {
		view[i] = *item
	}
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"items": view})
}

// AddItem handles POST /api/v1/items, as JSON or multipart form.
func (h *InventoryAPI) AddItem(c *gin.Context) {
	cmd, err := h.bindAddItem(c)
	if err != nil {
		h.writeError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	h.mu.Lock()
	item, err := h.inventorySvc.AddItem(c.Request.Context(), h.state, cmd)
	h.mu.Unlock()
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles DELETE /api/v1/items/:id
func (h *InventoryAPI) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	err := h.inventorySvc.DeleteItem(c.Request.Context(), h.state, id)
	h.mu.Unlock()
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestRecipe handles POST /api/v1/recipes/suggestions?search=
//
// The prompt is seeded from the filtered view's item names, mirroring the
// search box the user currently sees.
func (h *InventoryAPI) SuggestRecipe(c *gin.Context) {
	term := c.Query("search")

	h.mu.Lock()
	names := inventory.Names(inventory.Filter(h.state.Items(), term))
	h.mu.Unlock()

	html, err := h.recipeSvc.GenerateRecipe(c.Request.Context(), names)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": html})
}

// bindAddItem decodes either encoding of the add-item request.
func (h *InventoryAPI) bindAddItem(c *gin.Context) (inbound.AddItemCommand, error) {
	var req AddItemRequest
	var upload *inbound.ImageUpload

	if c.ContentType() == "multipart/form-data" {
		if err := c.ShouldBind(&req); err != nil {
			return inbound.AddItemCommand{}, err
		}

		header, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			// No image part; the item is created without one.
		case err != nil:
			return inbound.AddItemCommand{}, err
		case header.Size > maxImageBytes:
			return inbound.AddItemCommand{}, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
		default:
			file, err := header.Open()
			if err != nil {
				return inbound.AddItemCommand{}, err
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				return inbound.AddItemCommand{}, err
			}

			upload = &inbound.ImageUpload{
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			return inbound.AddItemCommand{}, err
		}
	}

	if err := h.validate.Struct(req); err != nil {
		return inbound.AddItemCommand{}, err
	}

	return inbound.AddItemCommand{
		Name:        req.Name,
		Quantity:    req.Quantity,
		ImageFile:   upload,
		ImageInline: req.Image,
	}, nil
}

// writeError maps application errors onto HTTP responses.
func (h *InventoryAPI) writeError(c *gin.Context, err error) {
	appErr := apperrors.Wrap(err, "request failed")

	h.logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.String("code", string(appErr.Code)),
		zap.Error(appErr),
	)

	c.JSON(appErr.StatusCode(), apperrors.ToErrorResponse(appErr))
}
