package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// BlobStorage implements outbound.BlobStorage with an in-process map.
// Returned URLs use a reserved host so they are recognized as blob
// references without ever resolving.
type BlobStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

const blobBaseURL = "https://blobs.invalid/"

// NewBlobStorage creates a new in-memory blob store
func NewBlobStorage() *BlobStorage {
	return &BlobStorage{
		blobs: make(map[string][]byte),
	}
}

// Upload stores the payload and returns its retrieval URL. A later upload to
// the same path overwrites the earlier blob, matching the path-derivation
// uniqueness rule.
func (s *BlobStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[path] = append([]byte(nil), data...)
	return blobBaseURL + path, nil
}

// Delete removes the blob addressed by its retrieval URL.
func (s *BlobStorage) Delete(ctx context.Context, url string) error {
	path, ok := strings.CutPrefix(url, blobBaseURL)
	if !ok {
		return fmt.Errorf("unknown blob url %q", url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blobs[path]; !exists {
		return fmt.Errorf("blob %q not found", path)
	}

	delete(s.blobs, path)
	return nil
}

// Get returns a stored payload, for test assertions.
func (s *BlobStorage) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[path]
	return data, ok
}

// Len returns the number of stored blobs.
func (s *BlobStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
