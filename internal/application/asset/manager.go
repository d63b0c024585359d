// Package asset provides the image asset lifecycle manager. It binds an item
// record to an optional image blob and coordinates upload and delete with
// item mutation.
package asset

import (
	"context"
	"path"
	"strings"

	"github.com/aislehq/pantry/internal/ports/inbound"
	"github.com/aislehq/pantry/internal/ports/outbound"
	"github.com/aislehq/pantry/pkg/errors"
	"go.uber.org/zap"
)

// blobPrefix is the blob-store path convention for uploaded images.
const blobPrefix = "images"

// Manager resolves and releases image references against the blob store.
type Manager struct {
	blobs  outbound.BlobStorage
	logger *zap.Logger
}

// NewManager creates a new asset lifecycle manager
func NewManager(blobs outbound.BlobStorage, logger *zap.Logger) *Manager {
	return &Manager{
		blobs:  blobs,
		logger: logger.Named("asset-manager"),
	}
}

// ResolveImage turns the add-item image input into the persisted image value.
//
// A raw file payload is uploaded under images/<original-file-name> and the
// durable retrieval URL is returned. Path derivation is the uniqueness key:
// two uploads sharing a file name land at the same path and the later blob
// wins. An inline-encoded payload is returned verbatim with no blob-store
// round trip. Absent input returns "no image".
func (m *Manager) ResolveImage(ctx context.Context, cmd inbound.AddItemCommand) (string, error) {
	switch {
	case cmd.ImageFile != nil:
		blobPath := path.Join(blobPrefix, path.Base(cmd.ImageFile.FileName))
		url, err := m.blobs.Upload(ctx, blobPath, cmd.ImageFile.Data, cmd.ImageFile.ContentType)
		if err != nil {
			return "", errors.NewAssetError("upload image blob", err).
				WithMetadata("path", blobPath)
		}

		m.logger.Info("Image blob uploaded",
			zap.String("path", blobPath),
			zap.String("url", url),
		)
		return url, nil

	case cmd.ImageInline != "":
		return cmd.ImageInline, nil

	default:
		return "", nil
	}
}

// ReleaseImage deletes the blob backing reference, if any. Inline payloads
// and absent references have no blob to release and are a no-op.
func (m *Manager) ReleaseImage(ctx context.Context, reference string) error {
	if !IsBlobReference(reference) {
		return nil
	}

	if err := m.blobs.Delete(ctx, reference); err != nil {
		return errors.NewAssetError("delete image blob", err).
			WithMetadata("url", reference)
	}

	m.logger.Info("Image blob released", zap.String("url", reference))
	return nil
}

// IsBlobReference reports whether reference resolves to a blob-store object
// rather than an inline payload. Upload always returns an HTTP retrieval
// URL, so the scheme is the discriminator.
func IsBlobReference(reference string) bool {
	return strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://")
}
