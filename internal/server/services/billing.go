package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/models"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
)

// BillingService moves users between plans. Payment results reported by
// the client widget are recorded without asking the gateway.
type BillingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	keyID       string
	amount      int64
	currency    string
	now         func() time.Time
}

func NewBillingService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *BillingService {
	return &BillingService{
		db:          db,
		repomanager: m,
		log:         log,
		keyID:       cfg.PaymentKeyID,
		amount:      cfg.PaymentAmount,
		currency:    cfg.PaymentCurrency,
		now:         time.Now,
	}
}

func (s *BillingService) Plans() []models.Plan {
	return models.Plans()
}

// Subscription returns the user's plan, free when nothing was bought.
func (s *BillingService) Subscription(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.repomanager.Subscriptions(s.db).Get(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return &models.Subscription{UserID: userID, Plan: models.PlanFree}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

func paidPlan(id models.PlanID) (models.Plan, error) {
	p, ok := models.FindPlan(id)
	if !ok || p.PriceCents == 0 {
		return models.Plan{}, fmt.Errorf("%w: %q", common.ErrUnknownPlan, id)
	}
	return p, nil
}

// Checkout prepares the payment widget for a paid plan.
func (s *BillingService) Checkout(ctx context.Context, userID string, plan models.PlanID) (*models.CheckoutIntent, error) {
	p, err := paidPlan(plan)
	if err != nil {
		return nil, err
	}
	suffix, err := common.MakeRandHexString(8)
	if err != nil {
		return nil, fmt.Errorf("receipt: %w", err)
	}
	receipt := "rcpt_" + suffix
	s.log.Info(ctx, "checkout started", "user_id", userID, "plan", p.ID, "receipt", receipt)
	return &models.CheckoutIntent{
		KeyID:    s.keyID,
		Amount:   s.amount,
		Currency: s.currency,
		Plan:     p.ID,
		Receipt:  receipt,
	}, nil
}

// Complete records the payment and moves the user to plan in one
// transaction.
func (s *BillingService) Complete(ctx context.Context, userID, paymentID string, plan models.PlanID) (*models.Subscription, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, fmt.Errorf("%w: payment id is empty", common.ErrInvalidRequest)
	}
	p, err := paidPlan(plan)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	payment := &models.Payment{
		ID:        uuid.NewString(),
		UserID:    userID,
		PaymentID: paymentID,
		Plan:      p.ID,
		Amount:    s.amount,
		Currency:  s.currency,
		CreatedAt: now,
	}
	sub := &models.Subscription{UserID: userID, Plan: p.ID, UpdatedAt: now}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Subscriptions(tx)
		if err := repo.RecordPayment(ctx, payment); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}
		if err := repo.Upsert(ctx, sub); err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "plan changed", "user_id", userID, "plan", p.ID, "payment_id", paymentID)
	return sub, nil
}
