package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/subscriptions"
)

// events records the order of side effects across fakes.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(format string, args ...any) {
	e.mu.Lock()
	e.log = append(e.log, fmt.Sprintf(format, args...))
	e.mu.Unlock()
}

func (e *events) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

// --- blob store ---

type fakeStore struct {
	ev *events

	mu      sync.Mutex
	objects map[string][]byte
	deleted []string

	failUpload   func(path string) bool
	downloadErr  error
	deleteErr    error
	signErr      error
	bucketsErr   error
	uploadDelay  time.Duration
	lastTTL      time.Duration
	downloadHits int
}

func newFakeStore(ev *events) *fakeStore {
	return &fakeStore{ev: ev, objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, path string, data []byte, _ string) error {
	if f.uploadDelay > 0 {
		time.Sleep(f.uploadDelay)
	}
	if f.ev != nil {
		f.ev.add("upload %s", path)
	}
	if f.failUpload != nil && f.failUpload(path) {
		return errors.New("blob store down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.objects[path]; exists {
		return fmt.Errorf("put %s: %w", path, common.ErrAlreadyExists)
	}
	f.objects[path] = data
	return nil
}

func (f *fakeStore) Download(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadHits++
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	data, ok := f.objects[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	return data, nil
}

func (f *fakeStore) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.lastTTL = ttl
	return "https://blob.example/" + path + "?sig=1", nil
}

func (f *fakeStore) ListBuckets(context.Context) ([]string, error) {
	if f.bucketsErr != nil {
		return nil, f.bucketsErr
	}
	return []string{"files"}, nil
}

func (f *fakeStore) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[path]
	return ok
}

func (f *fakeStore) get(path string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[path]
}

// --- files repository ---

type fakeFiles struct {
	ev *events

	mu        sync.Mutex
	rows      []catalog.FileRecord
	failName  string
	listErr   error
	probeErr  error
	statsErr  error
	summaries map[string]string
}

var _ files.Repository = (*fakeFiles)(nil)

func (f *fakeFiles) Insert(_ context.Context, rec *catalog.FileRecord) error {
	if f.ev != nil {
		f.ev.add("insert %s", rec.StoragePath)
	}
	if f.failName != "" && rec.Name == f.failName {
		return errors.New("connection reset")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.StoragePath == rec.StoragePath {
			return fmt.Errorf("storage path %s: %w", rec.StoragePath, common.ErrAlreadyExists)
		}
	}
	rec.ID = fmt.Sprintf("id-%d", len(f.rows)+1)
	rec.CreatedAt = rec.ModifiedDate
	f.rows = append(f.rows, *rec)
	return nil
}

func (f *fakeFiles) ListByUser(_ context.Context, userID string, limit int) ([]catalog.FileRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.FileRecord
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFiles) find(match func(catalog.FileRecord) bool) (*catalog.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if match(r) {
			return &r, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeFiles) GetByID(_ context.Context, userID, id string) (*catalog.FileRecord, error) {
	return f.find(func(r catalog.FileRecord) bool { return r.UserID == userID && r.ID == id })
}

func (f *fakeFiles) GetByStoragePath(_ context.Context, userID, path string) (*catalog.FileRecord, error) {
	return f.find(func(r catalog.FileRecord) bool { return r.UserID == userID && r.StoragePath == path })
}

func (f *fakeFiles) UpdateSummary(_ context.Context, userID, id, summary string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.summaries == nil {
		f.summaries = map[string]string{}
	}
	f.summaries[id] = summary
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows[i].Summary = summary
		}
	}
	return nil
}

func (f *fakeFiles) Stats(_ context.Context, userID string) (files.Stats, error) {
	if f.statsErr != nil {
		return files.Stats{}, f.statsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var st files.Stats
	for _, r := range f.rows {
		if r.UserID == userID {
			st.Count++
			st.TotalBytes += r.SizeBytes
		}
	}
	return st, nil
}

func (f *fakeFiles) Probe(context.Context) error { return f.probeErr }

func (f *fakeFiles) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.rows {
		out = append(out, r.StoragePath)
	}
	return out
}

// --- subscriptions repository ---

type fakeSubs struct {
	sub        *models.Subscription
	getErr     error
	upsertErr  error
	paymentErr error

	upserted []models.Subscription
	payments []models.Payment
}

var _ subscriptions.Repository = (*fakeSubs)(nil)

func (f *fakeSubs) Get(context.Context, string) (*models.Subscription, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.sub == nil {
		return nil, common.ErrNotFound
	}
	return f.sub, nil
}

func (f *fakeSubs) Upsert(_ context.Context, s *models.Subscription) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, *s)
	return nil
}

func (f *fakeSubs) RecordPayment(_ context.Context, p *models.Payment) error {
	if f.paymentErr != nil {
		return f.paymentErr
	}
	f.payments = append(f.payments, *p)
	return nil
}

// --- repository manager ---

type fakeRM struct {
	files *fakeFiles
	subs  *fakeSubs
}

func (m *fakeRM) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRM) Files(dbx.DBTX) files.Repository               { return m.files }
func (m *fakeRM) Subscriptions(dbx.DBTX) subscriptions.Repository { return m.subs }

// --- model ---

type fakeModel struct {
	mu    sync.Mutex
	calls []string
	reply string
	err   error
}

func (m *fakeModel) record(kind string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, kind)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *fakeModel) SummarizeText(_ context.Context, name, _ string, content string) (string, error) {
	return m.record("text:" + name + ":" + strings.TrimSpace(content))
}

func (m *fakeModel) SummarizeImage(_ context.Context, name, mime string, _ []byte) (string, error) {
	return m.record("image:" + name + ":" + mime)
}

func (m *fakeModel) SummarizeName(_ context.Context, name, fileType string) (string, error) {
	return m.record("name:" + name + ":" + fileType)
}

// --- config ---

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MaxUploadBytes = 1 << 10
	cfg.SummaryCacheTTL = time.Minute
	cfg.PaymentKeyID = "rzp_test_key"
	return cfg
}

func quietLog() logging.Logger { return logging.Discard() }
