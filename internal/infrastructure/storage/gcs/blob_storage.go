// Package gcs implements the image blob store adapter on Google Cloud
// Storage.
package gcs

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aislehq/pantry/internal/infrastructure/config"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// BlobStorage implements outbound.BlobStorage over a GCS bucket. Uploaded
// objects are addressed by path and retrieved through the public object URL,
// which is persisted verbatim as the item's image field.
type BlobStorage struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// NewClient creates a GCS client from configuration
func NewClient(ctx context.Context, cfg config.StorageConfig) (*storage.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return client, nil
}

// NewBlobStorage creates a new GCS-backed blob store
func NewBlobStorage(client *storage.Client, bucket string, logger *zap.Logger) *BlobStorage {
	return &BlobStorage{
		client: client,
		bucket: bucket,
		logger: logger.Named("gcs"),
	}
}

// Upload writes the payload to the object at path and returns its durable
// retrieval URL. A later upload to the same path overwrites the earlier
// object; the path is the uniqueness key.
func (s *BlobStorage) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(path)

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write object %q: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer for %q: %w", path, err)
	}

	url := s.objectURL(path)
	s.logger.Debug("Object uploaded",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	return url, nil
}

// Delete removes the object previously returned from Upload.
func (s *BlobStorage) Delete(ctx context.Context, url string) error {
	path, err := s.objectPath(url)
	if err != nil {
		return err
	}

	if err := s.client.Bucket(s.bucket).Object(path).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %q: %w", path, err)
	}

	return nil
}

// objectURL builds the public retrieval URL for an object path.
func (s *BlobStorage) objectURL(path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path)
}

// objectPath recovers the object path from a retrieval URL for this bucket.
func (s *BlobStorage) objectPath(url string) (string, error) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	path, ok := strings.CutPrefix(url, prefix)
	if !ok || path == "" {
		return "", fmt.Errorf("url %q does not address bucket %q", url, s.bucket)
	}
	return path, nil
}
