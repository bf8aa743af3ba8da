package cli

import (
	"context"
	"fmt"
	"strings"
)

// getSimpleText is an indirection used to facilitate testing.
var getSimpleText = GetSimpleText

func (a *App) showUpgrade(ctx context.Context) error {
	plans, err := a.billing.Plans(ctx)
	if err != nil {
		return a.fail("Could not load plans", err)
	}

	current := ""
	if sub, err := a.billing.Current(ctx); err != nil {
		a.log.Warn(ctx, "subscription unavailable", "error", err)
	} else {
		current = sub.Plan
	}

	for _, p := range plans {
		mark := " "
		if p.ID == current {
			mark = "*"
		}
		a.printf("%s %-9s %-8s %8s  %s\n", mark, p.ID, p.Storage, p.Price, strings.Join(p.Features, ", "))
	}
	a.printf("Type 'pay <plan>' to upgrade.\n")
	return nil
}

// pay opens a checkout for the plan and completes it with the payment id
// the widget hands back.
func (a *App) pay(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.fail("Usage", fmt.Errorf("pay <plan>"))
	}

	intent, err := a.billing.Checkout(ctx, args[0])
	if err != nil {
		return a.fail("Checkout failed", err)
	}
	a.printf("Checkout for %s: %s %s (key %s, receipt %s)\n",
		intent.Plan, formatMinor(intent.Amount), intent.Currency, intent.KeyID, intent.Receipt)

	paymentID, err := getSimpleText(a.reader, "Enter the payment id shown by the checkout widget", a.out)
	if err != nil {
		return a.fail("Payment cancelled", err)
	}

	sub, err := a.billing.Complete(ctx, paymentID, intent.Plan)
	if err != nil {
		return a.fail("Payment failed", err)
	}
	a.printf("You are now on the %s plan.\n", sub.Plan)
	return nil
}

// formatMinor renders an amount in minor units with two decimals.
func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
