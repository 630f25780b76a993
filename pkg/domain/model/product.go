package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// Product maps a plan to the provider-side product and price identifiers.
// Provisioned by the setup-products command and read at checkout time to
// resolve a price.
type Product struct {
	PlanName        types.Plan `json:"plan_name"`
	StripeProductID string     `json:"stripe_product_id"`
	StripePriceID   string     `json:"stripe_price_id"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Interval        string     `json:"interval"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
