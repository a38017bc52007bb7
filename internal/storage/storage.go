package storage

import "context"

// Storage is the blob-storage capability the project service depends on.
// Implementations own the mapping between delivery URLs and storage
// identifiers so callers never parse provider URL structure.
type Storage interface {
	// Upload stores a binary buffer under the given folder and returns a
	// durable public URL.
	Upload(ctx context.Context, data []byte, folder string) (string, error)
	// DeleteByURL removes the object a previously returned URL points at.
	DeleteByURL(ctx context.Context, url string) error
}
