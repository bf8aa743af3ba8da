package subscriptions

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

// Repository stores plan subscriptions and the payments that moved them.
type Repository interface {
	// Get returns the user's subscription or common.ErrNotFound.
	Get(ctx context.Context, userID string) (*models.Subscription, error)
	Upsert(ctx context.Context, sub *models.Subscription) error
	RecordPayment(ctx context.Context, p *models.Payment) error
}
