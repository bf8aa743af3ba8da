// Package session persists the shell's sign-in state in the local SQLite
// database.
package session

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/client/models"
)

type Repository interface {
	// Load returns nil, nil when nothing is cached.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}
