package model

import "github.com/decide-lab/decidehub/pkg/domain/types"

// PlanSpec describes one purchasable plan of the catalog
type PlanSpec struct {
	Plan        types.Plan `toml:"plan"`
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	Amount      int64      `toml:"amount"`
	Currency    string     `toml:"currency"`
	Interval    string     `toml:"interval"`
}

// PlanCatalog is the set of purchasable plans, loadable from a TOML file
type PlanCatalog struct {
	Plans []PlanSpec `toml:"plans"`
}

// DefaultPlanCatalog returns the built-in plan catalog: Pro at £10/month
// recurring and Lifetime at £50 one-time.
func DefaultPlanCatalog() *PlanCatalog {
	return &PlanCatalog{
		Plans: []PlanSpec{
			{
				Plan:        types.PlanPro,
				Name:        "Decision Hub Pro",
				Description: "Unlimited decisions and simulations with 3x better AI analysis",
				Amount:      1000,
				Currency:    "gbp",
				Interval:    "month",
			},
			{
				Plan:        types.PlanPremium,
				Name:        "Decision Hub Lifetime",
				Description: "Lifetime access with premium AI analysis and priority support",
				Amount:      5000,
				Currency:    "gbp",
				Interval:    "one-time",
			},
		},
	}
}

// Get returns the spec for a plan, or nil if the catalog does not carry it
func (c *PlanCatalog) Get(plan types.Plan) *PlanSpec {
	for i := range c.Plans {
		if c.Plans[i].Plan == plan {
			return &c.Plans[i]
		}
	}
	return nil
}
