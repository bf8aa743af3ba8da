package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/extract"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/ai"
	"github.com/dmitrijs2005/gophdrive/internal/server/blob"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// SummaryRequest is the body of POST /api/generate-summary.
type SummaryRequest struct {
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	StoragePath string `json:"storagePath"`
}

// SummaryFallback is returned in place of a summary when generation fails.
func SummaryFallback(name, fileType string) string {
	return fmt.Sprintf("Sorry, an AI summary could not be generated for %s (%s).", name, fileType)
}

type SummaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blob.Store
	model       ai.Summarizer
	log         logging.Logger
	textLimit   int
	persist     bool
	cache       *expirable.LRU[string, string]
}

func NewSummaryService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store, model ai.Summarizer, cfg *config.Config, log logging.Logger) *SummaryService {
	size := cfg.SummaryCacheSize
	if size <= 0 {
		size = 1
	}
	return &SummaryService{
		db:          db,
		repomanager: m,
		store:       store,
		model:       model,
		log:         log,
		textLimit:   cfg.SummaryTextLimit,
		persist:     cfg.SummaryPolicy == config.SummaryPersist,
		cache:       expirable.NewLRU[string, string](size, nil, cfg.SummaryCacheTTL),
	}
}

// Generate returns a short summary of the file at req.StoragePath. Model or
// storage failures never surface as errors: the caller gets the fallback
// sentence instead. Errors are reserved for bad requests and paths outside
// the caller's prefix.
func (s *SummaryService) Generate(ctx context.Context, userID string, req SummaryRequest) (string, error) {
	if strings.TrimSpace(req.FileName) == "" || req.StoragePath == "" {
		return "", fmt.Errorf("%w: fileName and storagePath are required", common.ErrInvalidRequest)
	}
	if !catalog.OwnedBy(req.StoragePath, userID) {
		return "", common.ErrForbidden
	}

	if cached, ok := s.cache.Get(req.StoragePath); ok {
		summaryCacheHits.Inc()
		return cached, nil
	}
	summaryCacheMisses.Inc()

	var rec *catalog.FileRecord
	if s.persist {
		r, err := s.repomanager.Files(s.db).GetByStoragePath(ctx, userID, req.StoragePath)
		if err != nil {
			s.log.Warn(ctx, "summary: record lookup failed", "storage_path", req.StoragePath, "error", err)
		} else {
			rec = r
			if rec.Summary != "" {
				s.cache.Add(req.StoragePath, rec.Summary)
				return rec.Summary, nil
			}
		}
	}

	summary, err := s.summarize(ctx, req)
	if err != nil {
		s.log.Error(ctx, "summary generation failed", "storage_path", req.StoragePath, "error", err)
		summariesTotal.WithLabelValues("fallback").Inc()
		return SummaryFallback(req.FileName, req.FileType), nil
	}

	s.cache.Add(req.StoragePath, summary)
	if rec != nil {
		if err := s.repomanager.Files(s.db).UpdateSummary(ctx, userID, rec.ID, summary); err != nil {
			s.log.Warn(ctx, "summary: persist failed", "file_id", rec.ID, "error", err)
		}
	}
	return summary, nil
}

// summarize picks the prompt path: file content for the text family, inline
// bytes for images, name and type for everything else. A download or
// extraction failure drops to the name-only prompt.
func (s *SummaryService) summarize(ctx context.Context, req SummaryRequest) (string, error) {
	data, err := s.store.Download(ctx, req.StoragePath)
	if err != nil {
		s.log.Warn(ctx, "summary: download failed", "storage_path", req.StoragePath, "error", err)
		data = nil
	}

	if data != nil {
		switch extract.FamilyOf(req.FileName, req.FileType) {
		case extract.FamilyText:
			text, err := extract.Text(req.FileName, data, s.textLimit)
			if err != nil {
				s.log.Warn(ctx, "summary: extraction failed", "file", req.FileName, "error", err)
				break
			}
			if strings.TrimSpace(text) == "" {
				break
			}
			summariesTotal.WithLabelValues("content").Inc()
			return s.model.SummarizeText(ctx, req.FileName, req.FileType, text)
		case extract.FamilyImage:
			mime, _ := extract.ImageMIME(req.FileName)
			summariesTotal.WithLabelValues("image").Inc()
			return s.model.SummarizeImage(ctx, req.FileName, mime, data)
		case extract.FamilyOther:
		}
	}

	s.log.Debug(ctx, "summary: name-only prompt", "file", req.FileName)
	summariesTotal.WithLabelValues("name").Inc()
	return s.model.SummarizeName(ctx, req.FileName, req.FileType)
}
