package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/server/blob"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// QueryResult is one page of a filtered catalog plus the option lists for
// the type and tag selectors, taken from the user's whole catalog.
type QueryResult struct {
	catalog.Page
	Types []string `json:"types"`
	Tags  []string `json:"tags"`
}

// StorageStats is the dashboard's usage summary.
type StorageStats struct {
	Count      int           `json:"count"`
	TotalBytes int64         `json:"totalBytes"`
	Plan       models.PlanID `json:"plan"`
	QuotaBytes int64         `json:"quotaBytes"`
}

// SignedURL is a time-limited preview link.
type SignedURL struct {
	URL       string `json:"signedUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blob.Store
	urlTTL      time.Duration
	now         func() time.Time
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store, cfg *config.Config) *CatalogService {
	ttl := cfg.SignedURLTTL
	if ttl <= 0 {
		ttl = common.SignedURLTTL
	}
	return &CatalogService{db: db, repomanager: m, store: store, urlTTL: ttl, now: time.Now}
}

// List returns the user's records newest first; limit <= 0 means all.
func (s *CatalogService) List(ctx context.Context, userID string, limit int) ([]catalog.FileRecord, error) {
	recs, err := s.repomanager.Files(s.db).ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return recs, nil
}

// Query filters the user's whole catalog and returns the requested page.
func (s *CatalogService) Query(ctx context.Context, userID string, q catalog.Query) (*QueryResult, error) {
	all, err := s.List(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	matched := catalog.Filter(all, q, s.now())
	return &QueryResult{
		Page:  catalog.Paginate(matched, q.Page, catalog.ItemsPerPage),
		Types: catalog.TypeOptions(all),
		Tags:  catalog.TagOptions(all),
	}, nil
}

func (s *CatalogService) Get(ctx context.Context, userID, id string) (*catalog.FileRecord, error) {
	return s.repomanager.Files(s.db).GetByID(ctx, userID, id)
}

// SignedURL returns a preview link for one of the user's files.
func (s *CatalogService) SignedURL(ctx context.Context, userID, id string) (*SignedURL, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !catalog.OwnedBy(rec.StoragePath, userID) {
		return nil, common.ErrForbidden
	}
	url, err := s.store.SignedURL(ctx, rec.StoragePath, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", rec.StoragePath, err)
	}
	return &SignedURL{URL: url, ExpiresIn: int(s.urlTTL / time.Second)}, nil
}

// Stats reports usage against the user's plan quota. Users without a
// subscription row are on the free plan.
func (s *CatalogService) Stats(ctx context.Context, userID string) (*StorageStats, error) {
	st, err := s.repomanager.Files(s.db).Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("file stats: %w", err)
	}

	planID := models.PlanFree
	sub, err := s.repomanager.Subscriptions(s.db).Get(ctx, userID)
	switch {
	case err == nil:
		planID = sub.Plan
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("subscription: %w", err)
	}
	plan, _ := models.FindPlan(planID)

	return &StorageStats{
		Count:      st.Count,
		TotalBytes: st.TotalBytes,
		Plan:       planID,
		QuotaBytes: plan.QuotaBytes,
	}, nil
}
