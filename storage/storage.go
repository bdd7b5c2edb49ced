package storage

import (
	"context"
	"io"
)

// ImageStore persists product images as opaque file keys resolvable
// to a public URL.
type ImageStore interface {
	// Save writes the image and returns its storage key.
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	// Delete removes a previously stored image. Missing keys are not
	// an error.
	Delete(ctx context.Context, key string) error
	// URL resolves a storage key to a public URL.
	URL(key string) string
}
