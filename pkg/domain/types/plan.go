package types

import "fmt"

// Plan represents a purchasable subscription plan
type Plan string

const (
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
)

// AllPlans returns all purchasable plans
func AllPlans() []Plan {
	return []Plan{
		PlanPro,
		PlanPremium,
	}
}

// IsValid checks if the plan is valid
func (p Plan) IsValid() bool {
	switch p {
	case PlanPro, PlanPremium:
		return true
	default:
		return false
	}
}

// Role returns the entitlement role granted by a successful purchase of the
// plan.
func (p Plan) Role() Role {
	if p == PlanPremium {
		return RolePremium
	}
	return RolePro
}

// Recurring reports whether the plan is billed as a recurring subscription.
// Pro is a monthly subscription, premium is a one-time payment.
func (p Plan) Recurring() bool {
	return p == PlanPro
}

// String returns the string representation of the plan
func (p Plan) String() string {
	return string(p)
}

// ParsePlan parses a string into a Plan
func ParsePlan(s string) (Plan, error) {
	plan := Plan(s)
	if !plan.IsValid() {
		return "", fmt.Errorf("invalid plan: %s", s)
	}
	return plan, nil
}
