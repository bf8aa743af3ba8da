package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	token string

	meRet string
	meErr error
	// meFn overrides meRet/meErr when set.
	meFn func(token string) (string, error)

	pingErr error

	files    []catalog.FileRecord
	listErr  error
	lastList int

	summary      string
	summaryErr   error
	summaryCalls []models.SummaryRequest

	uploadRet   []models.UploadOutcome
	uploadErr   error
	uploadParts []client.UploadPart

	signed   *models.SignedURL
	stats    *models.StorageStats
	plans    []models.Plan
	sub      *models.Subscription
	intent   *models.CheckoutIntent
	billErr  error
	lastPlan string
	lastPay  string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Me(context.Context) (string, error) {
	if f.meFn != nil {
		return f.meFn(f.token)
	}
	return f.meRet, f.meErr
}

func (f *fakeClient) ListFiles(_ context.Context, limit int) ([]catalog.FileRecord, error) {
	f.lastList = limit
	return f.files, f.listErr
}

func (f *fakeClient) SignedURL(context.Context, string) (*models.SignedURL, error) {
	return f.signed, nil
}

func (f *fakeClient) Stats(context.Context) (*models.StorageStats, error) { return f.stats, nil }

func (f *fakeClient) Upload(_ context.Context, parts []client.UploadPart, progress client.ProgressFunc) ([]models.UploadOutcome, error) {
	f.uploadParts = parts
	if progress != nil {
		progress(100)
	}
	return f.uploadRet, f.uploadErr
}

func (f *fakeClient) GenerateSummary(_ context.Context, req models.SummaryRequest) (string, error) {
	f.summaryCalls = append(f.summaryCalls, req)
	return f.summary, f.summaryErr
}

func (f *fakeClient) Plans(context.Context) ([]models.Plan, error) { return f.plans, f.billErr }

func (f *fakeClient) Subscription(context.Context) (*models.Subscription, error) {
	return f.sub, f.billErr
}

func (f *fakeClient) Checkout(_ context.Context, plan string) (*models.CheckoutIntent, error) {
	f.lastPlan = plan
	return f.intent, f.billErr
}

func (f *fakeClient) Complete(_ context.Context, paymentID, plan string) (*models.Subscription, error) {
	f.lastPay, f.lastPlan = paymentID, plan
	return f.sub, f.billErr
}
