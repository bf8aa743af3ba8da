package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/server/services"
)

// maxFilesPerRequest bounds the multipart body to this many max-size files.
const maxFilesPerRequest = 16

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"userId": UserID(r.Context())})
}

// queryKeys switch GET /api/files from a plain listing to a filtered page.
var queryKeys = []string{"q", "type", "date", "tag", "kind", "page"}

func parseQuery(r *http.Request) (q catalog.Query, filtered bool, err error) {
	v := r.URL.Query()
	for _, k := range queryKeys {
		if v.Has(k) {
			filtered = true
		}
	}

	q.Term = v.Get("q")
	q.Type = v.Get("type")
	q.Tag = v.Get("tag")
	if q.Recency, err = catalog.ParseRecency(v.Get("date")); err != nil {
		return q, filtered, fmt.Errorf("%w: %v", common.ErrInvalidRequest, err)
	}
	if k := v.Get("kind"); k != "" && k != "all" {
		kind, ok := catalog.ParseKind(k)
		if !ok {
			return q, filtered, fmt.Errorf("%w: unknown kind %q", common.ErrInvalidRequest, k)
		}
		q.Kind = &kind
	}
	q.Page = 1
	if p := v.Get("page"); p != "" {
		if q.Page, err = strconv.Atoi(p); err != nil {
			return q, filtered, fmt.Errorf("%w: page must be a number", common.ErrInvalidRequest)
		}
	}
	return q, filtered, nil
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	q, filtered, err := parseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if filtered {
		res, err := s.Catalog.Query(r.Context(), userID, q)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err = strconv.Atoi(l); err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative number")
			return
		}
	}
	recs, err := s.Catalog.List(r.Context(), userID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if recs == nil {
		recs = []catalog.FileRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": recs})
}

// fileID returns the {id} path parameter. Catalog ids are UUIDs, so anything
// else cannot name a file.
func fileID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("file %q: %w", id, common.ErrNotFound)
	}
	return id, nil
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rec, err := s.Catalog.Get(r.Context(), UserID(r.Context()), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) signedURL(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.Catalog.SignedURL(r.Context(), UserID(r.Context()), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Catalog.Stats(r.Context(), UserID(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type uploadOutcome struct {
	Name        string              `json:"name"`
	StoragePath string              `json:"storagePath,omitempty"`
	OK          bool                `json:"ok"`
	Error       string              `json:"error,omitempty"`
	Record      *catalog.FileRecord `json:"record,omitempty"`
}

func (s *Server) uploadFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes*maxFilesPerRequest)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart/form-data with file parts")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	files := make([]services.UploadFile, 0, len(headers))
	for _, h := range headers {
		data, err := readPart(h, s.MaxUploadBytes)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		ct := h.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		files = append(files, services.UploadFile{Name: h.Filename, ContentType: ct, Data: data})
	}

	results, err := s.Uploader.Upload(r.Context(), UserID(r.Context()), files)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]uploadOutcome, len(results))
	for i, res := range results {
		out[i] = uploadOutcome{Name: res.Name, StoragePath: res.StoragePath, OK: res.Err == nil, Record: res.Record}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

// readPart reads at most limit+1 bytes so the upload flow can tell an
// oversized file from one that fits exactly.
func readPart(h *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", h.Filename, err)
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, limit+1))
}
