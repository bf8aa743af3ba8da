package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

func newBillingFixture(t *testing.T, subs *fakeSubs) (*BillingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewBillingService(db, &fakeRM{files: &fakeFiles{}, subs: subs}, testConfig(), quietLog())
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func TestBilling_SubscriptionDefaultsToFree(t *testing.T) {
	s, _ := newBillingFixture(t, &fakeSubs{})

	sub, err := s.Subscription(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, sub.Plan)
	assert.Equal(t, "u1", sub.UserID)

	s, _ = newBillingFixture(t, &fakeSubs{getErr: assert.AnError})
	_, err = s.Subscription(context.Background(), "u1")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBilling_Checkout(t *testing.T) {
	s, _ := newBillingFixture(t, &fakeSubs{})

	in, err := s.Checkout(context.Background(), "u1", models.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, "rzp_test_key", in.KeyID)
	assert.Equal(t, int64(99900), in.Amount)
	assert.Equal(t, "INR", in.Currency)
	assert.Equal(t, models.PlanPro, in.Plan)
	assert.Regexp(t, `^rcpt_[0-9a-f]{16}$`, in.Receipt)

	for _, p := range []models.PlanID{models.PlanFree, "platinum"} {
		_, err := s.Checkout(context.Background(), "u1", p)
		assert.ErrorIs(t, err, common.ErrUnknownPlan, p)
	}
}

func TestBilling_CompleteCommits(t *testing.T) {
	subs := &fakeSubs{}
	s, mock := newBillingFixture(t, subs)
	mock.ExpectBegin()
	mock.ExpectCommit()

	sub, err := s.Complete(context.Background(), "u1", "pay_123", models.PlanBusiness)
	require.NoError(t, err)
	assert.Equal(t, &models.Subscription{UserID: "u1", Plan: models.PlanBusiness, UpdatedAt: fixedNow}, sub)

	require.Len(t, subs.payments, 1)
	p := subs.payments[0]
	assert.Equal(t, "pay_123", p.PaymentID)
	assert.Equal(t, int64(99900), p.Amount)
	assert.Equal(t, models.PlanBusiness, p.Plan)
	assert.NotEmpty(t, p.ID)
	assert.Len(t, subs.upserted, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBilling_CompleteRollsBack(t *testing.T) {
	subs := &fakeSubs{upsertErr: assert.AnError}
	s, mock := newBillingFixture(t, subs)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Complete(context.Background(), "u1", "pay_123", models.PlanPro)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBilling_CompleteValidation(t *testing.T) {
	s, mock := newBillingFixture(t, &fakeSubs{})

	_, err := s.Complete(context.Background(), "u1", " ", models.PlanPro)
	assert.ErrorIs(t, err, common.ErrInvalidRequest)

	_, err = s.Complete(context.Background(), "u1", "pay_1", "gold")
	assert.ErrorIs(t, err, common.ErrUnknownPlan)
	assert.NoError(t, mock.ExpectationsWereMet())
}
