package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/dmitrijs2005/gophdrive/internal/common"
)

// HTTPClient talks to the GophDrive JSON API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, hc *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if t := c.bearer(); t != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+t)
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON answer into out, when out is non-nil.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func mapStatus(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return &APIError{Status: resp.StatusCode, Message: body.Error}
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health/live", &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (string, error) {
	var resp struct {
		UserID string `json:"userId"`
	}
	if err := c.getJSON(ctx, "/api/me", &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// ListFiles returns the user's files, newest first. A limit of 0 means all.
func (c *HTTPClient) ListFiles(ctx context.Context, limit int) ([]catalog.FileRecord, error) {
	path := "/api/files"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp struct {
		Files []catalog.FileRecord `json:"files"`
	}
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

func (c *HTTPClient) SignedURL(ctx context.Context, id string) (*models.SignedURL, error) {
	var u models.SignedURL
	if err := c.getJSON(ctx, "/api/files/"+url.PathEscape(id)+"/url", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.StorageStats, error) {
	var st models.StorageStats
	if err := c.getJSON(ctx, "/api/files/stats", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Upload posts every part in one multipart request under the "file" field.
func (c *HTTPClient) Upload(ctx context.Context, parts []UploadPart, progress ProgressFunc) ([]models.UploadOutcome, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, p.Name))
		ct := p.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		w, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(p.Data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var body io.Reader = &buf
	if progress != nil {
		body = &progressReader{r: &buf, total: int64(buf.Len()), report: progress}
	}
	size := int64(buf.Len())

	req, err := c.newRequest(ctx, http.MethodPost, "/api/files", body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp struct {
		Results []models.UploadOutcome `json:"results"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *HTTPClient) GenerateSummary(ctx context.Context, in models.SummaryRequest) (string, error) {
	var resp struct {
		Summary string `json:"summary"`
	}
	if err := c.postJSON(ctx, "/api/generate-summary", in, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func (c *HTTPClient) Plans(ctx context.Context) ([]models.Plan, error) {
	var resp struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := c.getJSON(ctx, "/api/billing/plans", &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

func (c *HTTPClient) Subscription(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.getJSON(ctx, "/api/billing/subscription", &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *HTTPClient) Checkout(ctx context.Context, plan string) (*models.CheckoutIntent, error) {
	var intent models.CheckoutIntent
	if err := c.postJSON(ctx, "/api/billing/checkout", map[string]string{"plan": plan}, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *HTTPClient) Complete(ctx context.Context, paymentID, plan string) (*models.Subscription, error) {
	in := map[string]string{"payment_id": paymentID, "plan": plan}
	var sub models.Subscription
	if err := c.postJSON(ctx, "/api/billing/complete", in, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// progressReader reports whole percentages as the body is consumed. Each
// value is reported at most once.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > p.last {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
