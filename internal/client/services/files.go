package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/filex"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
)

var ErrNoFiles = errors.New("no files given")

// FileService covers the catalog operations of the shell.
type FileService interface {
	// Recent returns up to limit files, newest first. A limit of 0 means all.
	Recent(ctx context.Context, limit int) ([]catalog.FileRecord, error)
	// Enrich fills in rec.Summary. It never fails: errors become the
	// unavailable-summary sentence.
	Enrich(ctx context.Context, rec catalog.FileRecord) catalog.FileRecord
	// Upload reads the local paths and sends them in one request. Files that
	// cannot be read are reported as failed outcomes and not sent.
	Upload(ctx context.Context, paths []string, progress client.ProgressFunc) ([]models.UploadOutcome, error)
	SignedURL(ctx context.Context, id string) (*models.SignedURL, error)
	Stats(ctx context.Context) (*models.StorageStats, error)
}

type fileService struct {
	client   client.Client
	log      logging.Logger
	maxBytes int64
}

// NewFileService builds a FileService. maxBytes caps a single local file;
// 0 disables the cap.
func NewFileService(c client.Client, log logging.Logger, maxBytes int64) FileService {
	return &fileService{client: c, log: log, maxBytes: maxBytes}
}

func (s *fileService) Recent(ctx context.Context, limit int) ([]catalog.FileRecord, error) {
	recs, err := s.client.ListFiles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return recs, nil
}

func (s *fileService) Enrich(ctx context.Context, rec catalog.FileRecord) catalog.FileRecord {
	if rec.Summary != "" || rec.Name == "" {
		return rec
	}

	summary, err := s.client.GenerateSummary(ctx, models.SummaryRequest{
		FileName:    rec.Name,
		FileType:    rec.Type,
		StoragePath: rec.StoragePath,
	})
	if err != nil || summary == "" {
		s.log.Warn(ctx, "summary unavailable", "file", rec.Name, "error", err)
		summary = common.SummaryUnavailable
	}
	rec.Summary = summary
	return rec
}

func (s *fileService) Upload(ctx context.Context, paths []string, progress client.ProgressFunc) ([]models.UploadOutcome, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	// local[i] is the outcome for paths[i]; nil means it was sent.
	local := make([]*models.UploadOutcome, len(paths))
	parts := make([]client.UploadPart, 0, len(paths))
	for i, p := range paths {
		f, err := filex.ReadLocal(p, s.maxBytes)
		if err != nil {
			s.log.Warn(ctx, "skipping file", "path", p, "error", err)
			local[i] = &models.UploadOutcome{Name: p, Error: err.Error()}
			continue
		}
		parts = append(parts, client.UploadPart{Name: f.Name, ContentType: f.ContentType, Data: f.Data})
	}

	var sent []models.UploadOutcome
	if len(parts) > 0 {
		var err error
		if sent, err = s.client.Upload(ctx, parts, progress); err != nil {
			return nil, fmt.Errorf("upload: %w", err)
		}
	}

	out := make([]models.UploadOutcome, 0, len(paths))
	next := 0
	for _, o := range local {
		switch {
		case o != nil:
			out = append(out, *o)
		case next < len(sent):
			out = append(out, sent[next])
			next++
		}
	}
	s.log.Info(ctx, "upload finished", slog.Int("files", len(paths)), slog.Int("sent", len(parts)))
	return out, nil
}

func (s *fileService) SignedURL(ctx context.Context, id string) (*models.SignedURL, error) {
	return s.client.SignedURL(ctx, id)
}

func (s *fileService) Stats(ctx context.Context) (*models.StorageStats, error) {
	return s.client.Stats(ctx)
}
