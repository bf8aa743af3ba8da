package client

import (
	"context"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
)

// UploadPart is one file of a multipart upload.
type UploadPart struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProgressFunc receives the share of the request body sent so far, 0..100.
type ProgressFunc func(percent int)

type Client interface {
	SetToken(token string)
	Ping(ctx context.Context) error
	Me(ctx context.Context) (string, error)
	ListFiles(ctx context.Context, limit int) ([]catalog.FileRecord, error)
	SignedURL(ctx context.Context, id string) (*models.SignedURL, error)
	Stats(ctx context.Context) (*models.StorageStats, error)
	Upload(ctx context.Context, parts []UploadPart, progress ProgressFunc) ([]models.UploadOutcome, error)
	GenerateSummary(ctx context.Context, req models.SummaryRequest) (string, error)
	Plans(ctx context.Context) ([]models.Plan, error)
	Subscription(ctx context.Context) (*models.Subscription, error)
	Checkout(ctx context.Context, plan string) (*models.CheckoutIntent, error)
	Complete(ctx context.Context, paymentID, plan string) (*models.Subscription, error)
}
