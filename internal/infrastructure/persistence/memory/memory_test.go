package memory

import (
	"context"
	"testing"

	"github.com/aislehq/pantry/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAssignsIdentifier", func(t *testing.T) {
		repo := NewItemRepository()

		id, err := repo.Create(ctx, &inventory.Item{Name: "Apples", Quantity: 3})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("FindAllReturnsInsertionOrder", func(t *testing.T) {
		repo := NewItemRepository()
		for _, name := range []string{"Apples", "Orange", "Pineapple"} {
			_, err := repo.Create(ctx, &inventory.Item{Name: name, Quantity: 1})
			require.NoError(t, err)
		}

		items, err := repo.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Apples", items[0].Name)
		assert.Equal(t, "Pineapple", items[2].Name)
	})

	t.Run("FindAllReturnsCopies", func(t *testing.T) {
		repo := NewItemRepository()
		_, err := repo.Create(ctx, &inventory.Item{Name: "Apples", Quantity: 3})
		require.NoError(t, err)

		first, err := repo.FindAll(ctx)
		require.NoError(t, err)
		first[0].Quantity = 99

		second, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), second[0].Quantity)
	})

	t.Run("UpdateQuantityOverwritesOnlyQuantity", func(t *testing.T) {
		repo := NewItemRepository()
		id, err := repo.Create(ctx, &inventory.Item{Name: "Apples", Quantity: 3, Image: "data:x"})
		require.NoError(t, err)

		require.NoError(t, repo.UpdateQuantity(ctx, id, 6))

		items, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6), items[0].Quantity)
		assert.Equal(t, "data:x", items[0].Image)
	})

	t.Run("UpdateUnknownID_ReturnsNotFound", func(t *testing.T) {
		repo := NewItemRepository()

		err := repo.UpdateQuantity(ctx, "missing", 1)

		assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	})

	t.Run("DeleteRemovesItem", func(t *testing.T) {
		repo := NewItemRepository()
		id, err := repo.Create(ctx, &inventory.Item{Name: "Apples", Quantity: 3})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))

		items, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)

		assert.ErrorIs(t, repo.Delete(ctx, id), inventory.ErrItemNotFound)
	})
}

func TestBlobStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadReturnsRetrievalURL", func(t *testing.T) {
		store := NewBlobStorage()

		url, err := store.Upload(ctx, "images/apples.png", []byte{1, 2}, "image/png")

		require.NoError(t, err)
		assert.Equal(t, "https://blobs.invalid/images/apples.png", url)

		data, ok := store.Get("images/apples.png")
		require.True(t, ok)
		assert.Equal(t, []byte{1, 2}, data)
	})

	t.Run("SamePathOverwrites_LaterUploadWins", func(t *testing.T) {
		store := NewBlobStorage()
		_, err := store.Upload(ctx, "images/apples.png", []byte{1}, "image/png")
		require.NoError(t, err)
		_, err = store.Upload(ctx, "images/apples.png", []byte{2}, "image/png")
		require.NoError(t, err)

		data, _ := store.Get("images/apples.png")
		assert.Equal(t, []byte{2}, data)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("DeleteByURL", func(t *testing.T) {
		store := NewBlobStorage()
		url, err := store.Upload(ctx, "images/apples.png", []byte{1}, "image/png")
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, url))
		assert.Equal(t, 0, store.Len())

		assert.Error(t, store.Delete(ctx, url))
	})

	t.Run("DeleteUnknownURL_IsError", func(t *testing.T) {
		store := NewBlobStorage()

		assert.Error(t, store.Delete(ctx, "https://elsewhere.invalid/images/a.png"))
	})
}
