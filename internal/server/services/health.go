package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophdrive/internal/server/blob"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// Check is the outcome of one readiness probe.
type Check struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blob.Store
}

func NewHealthService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store) *HealthService {
	return &HealthService{db: db, repomanager: m, store: store}
}

// Ready probes the blob store and the catalog table. ok is true only when
// every check passed.
func (s *HealthService) Ready(ctx context.Context) (checks []Check, ok bool) {
	ok = true
	add := func(name string, err error) {
		c := Check{Name: name, OK: err == nil}
		if err != nil {
			c.Error = err.Error()
			ok = false
		}
		checks = append(checks, c)
	}

	_, err := s.store.ListBuckets(ctx)
	add("storage", err)
	add("catalog", s.repomanager.Files(s.db).Probe(ctx))

	return checks, ok
}
