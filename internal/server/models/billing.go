// Package models defines server-side records persisted next to the file
// catalog: plans, subscriptions and recorded payments.
package models

import "time"

// PlanID names a storage plan.
type PlanID string

const (
	PlanFree     PlanID = "free"
	PlanPro      PlanID = "pro"
	PlanBusiness PlanID = "business"
)

const gib = int64(1) << 30

// Plan is a storage tier offered on the upgrade view.
type Plan struct {
	ID         PlanID   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Price      string   `json:"price"`
	QuotaBytes int64    `json:"quota_bytes"`
	Storage    string   `json:"storage"`
	Features   []string `json:"features"`
}

// Plans returns the offered tiers, cheapest first.
func Plans() []Plan {
	return []Plan{
		{
			ID: PlanFree, Name: "Free", PriceCents: 0, Price: "$0",
			QuotaBytes: 5 * gib, Storage: "5GB",
			Features: []string{"5GB Storage", "Basic file sharing", "AI summaries"},
		},
		{
			ID: PlanPro, Name: "Pro", PriceCents: 999, Price: "$9.99",
			QuotaBytes: 100 * gib, Storage: "100GB",
			Features: []string{"100GB Storage", "Advanced sharing", "Priority support", "AI tagging search"},
		},
		{
			ID: PlanBusiness, Name: "Business", PriceCents: 1999, Price: "$19.99",
			QuotaBytes: 1024 * gib, Storage: "1TB",
			Features: []string{"1TB Storage", "Team collaboration", "Admin controls", "24/7 support"},
		},
	}
}

// FindPlan looks a plan up by id.
func FindPlan(id PlanID) (Plan, bool) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Subscription is the plan a user is currently on.
type Subscription struct {
	UserID    string    `json:"user_id"`
	Plan      PlanID    `json:"plan"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment is a completed checkout as reported by the payment widget.
// The gateway result is recorded as-is, without verification.
type Payment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PaymentID string    `json:"payment_id"`
	Plan      PlanID    `json:"plan"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckoutIntent is what the client hands to the payment widget.
type CheckoutIntent struct {
	KeyID    string `json:"key_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Plan     PlanID `json:"plan"`
	Receipt  string `json:"receipt"`
}
