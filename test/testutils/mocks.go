// Package testutils provides mock implementations for testing
package testutils

import (
	"context"

	"github.com/aislehq/pantry/internal/domain/inventory"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository provides a mock implementation of outbound.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

// FindAll scans the mocked collection
func (m *MockItemRepository) FindAll(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

// Create persists a new item
func (m *MockItemRepository) Create(ctx context.Context, item *inventory.Item) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

// UpdateQuantity persists only the quantity field
func (m *MockItemRepository) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// Delete removes the item document
func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBlobStorage provides a mock implementation of outbound.BlobStorage
type MockBlobStorage struct {
	mock.Mock
}

// Upload stores a blob payload
func (m *MockBlobStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, path, data, contentType)
	return args.String(0), args.Error(1)
}

// Delete removes a blob by its retrieval URL
func (m *MockBlobStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// MockCompletionService provides a mock implementation of outbound.CompletionService
type MockCompletionService struct {
	mock.Mock
}

// Complete returns the mocked completion text
func (m *MockCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
