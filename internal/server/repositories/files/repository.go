package files

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
)

// Stats aggregates a user's catalog.
type Stats struct {
	Count      int   `json:"count"`
	TotalBytes int64 `json:"total_bytes"`
}

// Repository is the catalog store. Every read is scoped by user id.
type Repository interface {
	// Insert stores rec and fills in its ID and CreatedAt.
	Insert(ctx context.Context, rec *catalog.FileRecord) error
	// ListByUser returns the user's records newest first; limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]catalog.FileRecord, error)
	GetByID(ctx context.Context, userID, id string) (*catalog.FileRecord, error)
	GetByStoragePath(ctx context.Context, userID, storagePath string) (*catalog.FileRecord, error)
	UpdateSummary(ctx context.Context, userID, id, summary string) error
	Stats(ctx context.Context, userID string) (Stats, error)
	// Probe runs a trivial read against the table.
	Probe(ctx context.Context) error
}
