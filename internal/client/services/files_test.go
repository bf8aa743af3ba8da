package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	tests := []struct {
		name      string
		rec       catalog.FileRecord
		summary   string
		err       error
		want      string
		wantCalls int
	}{
		{
			name:      "existing summary makes no call",
			rec:       catalog.FileRecord{Name: "a.txt", Summary: "cached"},
			want:      "cached",
			wantCalls: 0,
		},
		{
			name:      "no name makes no call",
			rec:       catalog.FileRecord{},
			want:      "",
			wantCalls: 0,
		},
		{
			name:      "generated summary is merged",
			rec:       catalog.FileRecord{Name: "a.txt", Type: "text", StoragePath: "u/1_a.txt"},
			summary:   "A short note.",
			want:      "A short note.",
			wantCalls: 1,
		},
		{
			name:      "failure merges the unavailable sentence",
			rec:       catalog.FileRecord{Name: "a.txt"},
			err:       client.ErrUnavailable,
			want:      common.SummaryUnavailable,
			wantCalls: 1,
		},
		{
			name:      "empty answer merges the unavailable sentence",
			rec:       catalog.FileRecord{Name: "a.txt"},
			want:      common.SummaryUnavailable,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{summary: tt.summary, summaryErr: tt.err}
			svc := NewFileService(fc, logging.Discard(), 0)

			got := svc.Enrich(context.Background(), tt.rec)
			assert.Equal(t, tt.want, got.Summary)
			assert.Len(t, fc.summaryCalls, tt.wantCalls)
		})
	}
}

func TestEnrich_SendsRecordFields(t *testing.T) {
	fc := &fakeClient{summary: "ok"}
	svc := NewFileService(fc, logging.Discard(), 0)

	svc.Enrich(context.Background(), catalog.FileRecord{Name: "r.pdf", Type: "pdf", StoragePath: "u/2_r.pdf"})

	want := []models.SummaryRequest{{FileName: "r.pdf", FileType: "pdf", StoragePath: "u/2_r.pdf"}}
	if diff := cmp.Diff(want, fc.summaryCalls); diff != "" {
		t.Fatalf("summary requests mismatch (-want +got):\n%s", diff)
	}
}

func TestRecent(t *testing.T) {
	fc := &fakeClient{files: []catalog.FileRecord{{ID: "1"}}}
	svc := NewFileService(fc, logging.Discard(), 0)

	got, err := svc.Recent(context.Background(), common.DashboardLimit)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, common.DashboardLimit, fc.lastList)

	fc.listErr = client.ErrUnauthorized
	_, err = svc.Recent(context.Background(), 0)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	c := filepath.Join(dir, "c.md")
	require.NoError(t, os.WriteFile(a, []byte("alpha"), 0o600))
	require.NoError(t, os.WriteFile(c, []byte("# gamma"), 0o600))
	missing := filepath.Join(dir, "b.txt")

	fc := &fakeClient{uploadRet: []models.UploadOutcome{
		{Name: "a.txt", OK: true},
		{Name: "c.md", OK: false, Error: "blob write failed"},
	}}
	svc := NewFileService(fc, logging.Discard(), 0)

	var progress []int
	out, err := svc.Upload(context.Background(), []string{a, missing, c}, func(p int) { progress = append(progress, p) })
	require.NoError(t, err)

	require.Len(t, fc.uploadParts, 2)
	assert.Equal(t, "a.txt", fc.uploadParts[0].Name)
	assert.Equal(t, []byte("# gamma"), fc.uploadParts[1].Data)

	require.Len(t, out, 3)
	assert.Equal(t, "a.txt", out[0].Name)
	assert.True(t, out[0].OK)
	assert.Equal(t, missing, out[1].Name)
	assert.False(t, out[1].OK)
	assert.NotEmpty(t, out[1].Error)
	assert.Equal(t, "c.md", out[2].Name)
	assert.Equal(t, []int{100}, progress)
}

func TestUpload_Edges(t *testing.T) {
	t.Run("no paths", func(t *testing.T) {
		svc := NewFileService(&fakeClient{}, logging.Discard(), 0)
		_, err := svc.Upload(context.Background(), nil, nil)
		require.ErrorIs(t, err, ErrNoFiles)
	})

	t.Run("nothing readable sends nothing", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewFileService(fc, logging.Discard(), 0)
		out, err := svc.Upload(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, nil)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.False(t, out[0].OK)
		assert.Nil(t, fc.uploadParts)
	})

	t.Run("size cap", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "big.bin")
		require.NoError(t, os.WriteFile(p, make([]byte, 64), 0o600))
		fc := &fakeClient{}
		svc := NewFileService(fc, logging.Discard(), 16)
		out, err := svc.Upload(context.Background(), []string{p}, nil)
		require.NoError(t, err)
		assert.False(t, out[0].OK)
	})

	t.Run("transport error", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
		boom := errors.New("boom")
		svc := NewFileService(&fakeClient{uploadErr: boom}, logging.Discard(), 0)
		_, err := svc.Upload(context.Background(), []string{p}, nil)
		require.ErrorIs(t, err, boom)
	})
}

func TestSignedURLAndStats(t *testing.T) {
	fc := &fakeClient{
		signed: &models.SignedURL{URL: "https://x", ExpiresIn: 3600},
		stats:  &models.StorageStats{Count: 1},
	}
	svc := NewFileService(fc, logging.Discard(), 0)

	u, err := svc.SignedURL(context.Background(), "id")
	require.NoError(t, err)
	assert.Equal(t, 3600, u.ExpiresIn)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, st.Count)
}
