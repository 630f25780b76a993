package types

// SubscriptionStatus mirrors the payment provider's subscription state as
// tracked locally. It is eventually consistent with the provider via webhook.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// IsValid checks if the subscription status is valid
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the subscription status
func (s SubscriptionStatus) String() string {
	return string(s)
}
