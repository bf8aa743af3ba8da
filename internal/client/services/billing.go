package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
)

var ErrEmptyPaymentID = errors.New("payment id is empty")

// BillingService drives the upgrade view: plan listing and the two-step
// checkout (intent, then completion with the gateway's payment id).
type BillingService interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Current(ctx context.Context) (*models.Subscription, error)
	Checkout(ctx context.Context, plan string) (*models.CheckoutIntent, error)
	Complete(ctx context.Context, paymentID, plan string) (*models.Subscription, error)
}

type billingService struct {
	client client.Client
}

func NewBillingService(c client.Client) BillingService {
	return &billingService{client: c}
}

func (b *billingService) Plans(ctx context.Context) ([]models.Plan, error) {
	return b.client.Plans(ctx)
}

func (b *billingService) Current(ctx context.Context) (*models.Subscription, error) {
	return b.client.Subscription(ctx)
}

func (b *billingService) Checkout(ctx context.Context, plan string) (*models.CheckoutIntent, error) {
	plan = strings.ToLower(strings.TrimSpace(plan))
	intent, err := b.client.Checkout(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("checkout %s: %w", plan, err)
	}
	return intent, nil
}

func (b *billingService) Complete(ctx context.Context, paymentID, plan string) (*models.Subscription, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, ErrEmptyPaymentID
	}
	sub, err := b.client.Complete(ctx, paymentID, strings.ToLower(strings.TrimSpace(plan)))
	if err != nil {
		return nil, fmt.Errorf("complete payment: %w", err)
	}
	return sub, nil
}
