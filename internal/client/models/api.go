// Package models defines the client-side shapes of the GophDrive HTTP API.
package models

import (
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
)

// UploadOutcome is the per-file result of a multipart upload.
type UploadOutcome struct {
	Name        string              `json:"name"`
	StoragePath string              `json:"storagePath,omitempty"`
	OK          bool                `json:"ok"`
	Error       string              `json:"error,omitempty"`
	Record      *catalog.FileRecord `json:"record,omitempty"`
}

type StorageStats struct {
	Count      int    `json:"count"`
	TotalBytes int64  `json:"totalBytes"`
	Plan       string `json:"plan"`
	QuotaBytes int64  `json:"quotaBytes"`
}

type SignedURL struct {
	URL       string `json:"signedUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

type SummaryRequest struct {
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	StoragePath string `json:"storagePath"`
}

type Plan struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Price      string   `json:"price"`
	QuotaBytes int64    `json:"quota_bytes"`
	Storage    string   `json:"storage"`
	Features   []string `json:"features"`
}

type Subscription struct {
	UserID    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CheckoutIntent carries what the payment widget needs to open.
type CheckoutIntent struct {
	KeyID    string `json:"key_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Plan     string `json:"plan"`
	Receipt  string `json:"receipt"`
}
