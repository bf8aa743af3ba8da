// Package blob is the object store holding uploaded file bytes, addressed
// by storage path.
package blob

import (
	"context"
	"time"
)

// Store is the blob-store contract used by the upload, summary and preview
// paths.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// Download returns the object bytes or common.ErrNotFound.
	Download(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	// SignedURL returns a time-limited GET link for path.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	ListBuckets(ctx context.Context) ([]string, error)
}
