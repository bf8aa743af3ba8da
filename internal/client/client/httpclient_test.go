package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := NewHTTPClient(ts.URL+"/", ts.Client())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8080", "://x"} {
		_, err := NewHTTPClient(u, nil)
		assert.Error(t, err, u)
	}
}

func TestHTTPClient_AttachesBearer(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]string{"userId": "u1"})
	}))

	c.SetToken("tok")
	id, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	assert.Equal(t, "Bearer tok", got)

	c.SetToken("")
	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"error": "nope"})
			}))
			_, err := c.SignedURL(context.Background(), "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("other statuses keep the message", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown plan"})
		}))
		_, err := c.Checkout(context.Background(), "gold")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "unknown plan", apiErr.Message)
	})
}

func TestHTTPClient_UnreachableIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := NewHTTPClient(url, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPClient_Ping(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health/live", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	assert.NoError(t, c.Ping(context.Background()))
}

func TestHTTPClient_ListFiles(t *testing.T) {
	var query string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{"files": []catalog.FileRecord{{ID: "1", Name: "a.txt"}}})
	}))

	recs, err := c.ListFiles(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a.txt", recs[0].Name)
	assert.Equal(t, "limit=3", query)

	_, err = c.ListFiles(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestHTTPClient_SignedURLAndStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/files/abc/url", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.SignedURL{URL: "https://s3/x", ExpiresIn: 3600})
	})
	mux.HandleFunc("/api/files/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.StorageStats{Count: 2, TotalBytes: 10, Plan: "free", QuotaBytes: 5})
	})
	c := newTestClient(t, mux)

	u, err := c.SignedURL(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3600, u.ExpiresIn)

	st, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, "free", st.Plan)
}

func TestHTTPClient_Upload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["file"]
		out := make([]models.UploadOutcome, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			require.NoError(t, err)
			b, _ := io.ReadAll(f)
			f.Close()
			out = append(out, models.UploadOutcome{
				Name: fh.Filename, OK: len(b) > 0, StoragePath: fh.Header.Get("Content-Type"),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": out})
	}))

	var reports []int
	res, err := c.Upload(context.Background(), []UploadPart{
		{Name: "a.txt", ContentType: "text/plain", Data: []byte("hello")},
		{Name: "b.bin", Data: []byte{1, 2, 3}},
	}, func(p int) { reports = append(reports, p) })
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a.txt", res[0].Name)
	assert.Equal(t, "text/plain", res[0].StoragePath)
	assert.Equal(t, "application/octet-stream", res[1].StoragePath)

	require.NotEmpty(t, reports)
	assert.Equal(t, 100, reports[len(reports)-1])
	for i := 1; i < len(reports); i++ {
		assert.Greater(t, reports[i], reports[i-1])
	}
}

func TestHTTPClient_GenerateSummary(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.SummaryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, map[string]string{"summary": "about " + in.FileName})
	}))

	s, err := c.GenerateSummary(context.Background(), models.SummaryRequest{FileName: "a.txt", FileType: "text", StoragePath: "u/1_a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "about a.txt", s)
}

func TestHTTPClient_Billing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/billing/plans", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"plans": []models.Plan{{ID: "free"}, {ID: "pro"}}})
	})
	mux.HandleFunc("/api/billing/subscription", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Subscription{Plan: "free"})
	})
	mux.HandleFunc("/api/billing/checkout", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusOK, models.CheckoutIntent{Plan: in["plan"], Amount: 99900, Currency: "INR"})
	})
	mux.HandleFunc("/api/billing/complete", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "pay_1", in["payment_id"])
		writeJSON(w, http.StatusOK, models.Subscription{Plan: in["plan"]})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	plans, err := c.Plans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	sub, err := c.Subscription(ctx)
	require.NoError(t, err)
	assert.Equal(t, "free", sub.Plan)

	intent, err := c.Checkout(ctx, "pro")
	require.NoError(t, err)
	assert.Equal(t, int64(99900), intent.Amount)
	assert.Equal(t, "pro", intent.Plan)

	sub, err = c.Complete(ctx, "pay_1", "pro")
	require.NoError(t, err)
	assert.Equal(t, "pro", sub.Plan)
}
