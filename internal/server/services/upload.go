// Package services contains server-side business logic: the upload flow,
// catalog queries, summary generation, billing and readiness checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/blob"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// UploadFile is one file handed to the upload flow.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult is the per-file outcome. Err is nil on success.
type UploadResult struct {
	Name        string
	StoragePath string
	Record      *catalog.FileRecord
	Err         error
}

const (
	// maxPathAttempts bounds how often a file moves to the next millisecond
	// when its storage path is already taken in the blob store.
	maxPathAttempts = 5

	recentPathsSize = 4096
	recentPathsTTL  = time.Minute
)

type UploadService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	store        blob.Store
	log          logging.Logger
	concurrency  int
	maxBytes     int64
	orphanPolicy string
	paths        *pathSet
	now          func() time.Time
}

func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store, cfg *config.Config, log logging.Logger) *UploadService {
	return &UploadService{
		db:           db,
		repomanager:  m,
		store:        store,
		log:          log,
		concurrency:  max(cfg.UploadConcurrency, 1),
		maxBytes:     cfg.MaxUploadBytes,
		orphanPolicy: cfg.OrphanPolicy,
		paths:        newPathSet(recentPathsSize, recentPathsTTL),
		now:          time.Now,
	}
}

// Upload stores every file under userID. Failures are isolated: a file that
// fails never stops the others, and results come back in input order. With
// concurrency 1 file N is fully stored before file N+1 starts.
func (s *UploadService) Upload(ctx context.Context, userID string, files []UploadFile) ([]UploadResult, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	if len(files) == 0 {
		return nil, common.ErrEmptyUpload
	}
	results := make([]UploadResult, len(files))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, f := range files {
		g.Go(func() error {
			results[i] = s.uploadOne(ctx, userID, f)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (s *UploadService) uploadOne(ctx context.Context, userID string, f UploadFile) UploadResult {
	res := UploadResult{Name: f.Name}
	size := int64(len(f.Data))

	if s.maxBytes > 0 && size > s.maxBytes {
		res.Err = fmt.Errorf("%w: %s is %d bytes, limit %d", common.ErrFileTooLarge, f.Name, size, s.maxBytes)
		uploadsTotal.WithLabelValues("rejected").Inc()
		return res
	}

	name := catalog.SanitizeName(f.Name)
	path, err := s.writeBlob(ctx, userID, name, f)
	res.StoragePath = path
	if err != nil {
		s.log.Error(ctx, "blob upload failed", "storage_path", path, "error", err)
		res.Err = fmt.Errorf("store %s: %w", f.Name, err)
		uploadsTotal.WithLabelValues("blob_failed").Inc()
		return res
	}

	rec := &catalog.FileRecord{
		UserID:       userID,
		Name:         name,
		Size:         catalog.FormatSize(size),
		SizeBytes:    size,
		Type:         catalog.TypeFromMIME(f.ContentType),
		ContentType:  f.ContentType,
		StoragePath:  path,
		ModifiedDate: s.now().UTC(),
		Tags:         []string{},
	}
	if err := s.repomanager.Files(s.db).Insert(ctx, rec); err != nil {
		s.log.Error(ctx, "catalog insert failed", "storage_path", path, "error", err)
		if errors.Is(err, common.ErrAlreadyExists) {
			// another row owns this path; the blob may be what it points at
			s.log.Warn(ctx, "blob left for existing catalog row", "storage_path", path)
			orphanBlobsTotal.WithLabelValues("conflict").Inc()
		} else {
			s.handleOrphan(ctx, path)
		}
		res.Err = fmt.Errorf("record %s: %w", f.Name, err)
		uploadsTotal.WithLabelValues("insert_failed").Inc()
		return res
	}

	uploadsTotal.WithLabelValues("ok").Inc()
	uploadBytesTotal.Add(float64(size))
	s.log.Info(ctx, "file uploaded", "storage_path", path, "bytes", size)
	res.Record = rec
	return res
}

// writeBlob stores f under a fresh path. A path that already holds an object
// (written by another request or server instance) is never overwritten; the
// file moves on to the next free millisecond instead.
func (s *UploadService) writeBlob(ctx context.Context, userID, name string, f UploadFile) (string, error) {
	at := s.now()
	for attempt := 1; ; attempt++ {
		path := s.paths.reserve(userID, name, at)
		err := s.store.Upload(ctx, path, f.Data, f.ContentType)
		if err == nil || !errors.Is(err, common.ErrAlreadyExists) || attempt == maxPathAttempts {
			return path, err
		}
		s.log.Warn(ctx, "storage path taken, trying the next one", "storage_path", path)
	}
}

// handleOrphan deals with a blob that has no catalog row. Cleanup failures
// are logged and counted only.
func (s *UploadService) handleOrphan(ctx context.Context, path string) {
	if s.orphanPolicy == config.OrphanKeep {
		s.log.Warn(ctx, "orphaned blob kept", "storage_path", path)
		orphanBlobsTotal.WithLabelValues("kept").Inc()
		return
	}
	if err := s.store.Delete(ctx, path); err != nil {
		s.log.Error(ctx, "orphaned blob cleanup failed", "storage_path", path, "error", err)
		orphanBlobsTotal.WithLabelValues("cleanup_failed").Inc()
		return
	}
	s.log.Info(ctx, "orphaned blob removed", "storage_path", path)
	orphanBlobsTotal.WithLabelValues("removed").Inc()
}

// pathSet remembers storage paths handed out recently by this process, across
// requests. Two files with the same name in the same millisecond are moved
// apart by 1ms. Entries expire after ttl; by then the clock has moved on.
type pathSet struct {
	mu    sync.Mutex
	taken *expirable.LRU[string, struct{}]
}

func newPathSet(size int, ttl time.Duration) *pathSet {
	return &pathSet{taken: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

func (ps *pathSet) reserve(userID, name string, at time.Time) string {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for {
		p := catalog.StoragePath(userID, at, name)
		if !ps.taken.Contains(p) {
			ps.taken.Add(p, struct{}{})
			return p
		}
		at = at.Add(time.Millisecond)
	}
}
