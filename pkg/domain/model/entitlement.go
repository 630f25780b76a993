package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// Entitlement is the singleton per-user role record. It is mutated only by
// the billing webhook handler: upgrade on successful checkout, downgrade to
// free on subscription cancellation.
type Entitlement struct {
	UserID    types.UserID
	Role      types.Role
	UpdatedAt time.Time
}

// Subscription mirrors the payment provider's subscription object for a
// user. It is eventually consistent with the provider via webhook delivery.
type Subscription struct {
	UserID               types.UserID
	Status               types.SubscriptionStatus
	StripeCustomerID     string
	StripeSubscriptionID string
	StripePriceID        string
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
	TrialEnd             *time.Time
	UpdatedAt            time.Time
}
