package usecase

import (
	"github.com/decide-lab/decidehub/pkg/domain/interfaces"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/service/billing"
	"github.com/m-mizutani/gollem"
)

// UseCases bundles the application operations behind one dependency-injected
// entry point. LLM clients and the billing service are optional; operations
// that need a missing dependency fail with an explicit error.
type UseCases struct {
	repo        interfaces.Repository
	premiumLLM  gollem.LLMClient
	standardLLM gollem.LLMClient
	billing     billing.Service
	plans       *model.PlanCatalog
}

type Option func(*UseCases)

// WithPremiumLLM sets the higher-capability client used for pro/premium
// analysis and all risk simulations.
func WithPremiumLLM(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.premiumLLM = client
	}
}

// WithStandardLLM sets the client used for free-tier analysis
func WithStandardLLM(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.standardLLM = client
	}
}

// WithBilling sets the payment provider client
func WithBilling(svc billing.Service) Option {
	return func(uc *UseCases) {
		uc.billing = svc
	}
}

// WithPlanCatalog overrides the built-in plan catalog
func WithPlanCatalog(catalog *model.PlanCatalog) Option {
	return func(uc *UseCases) {
		uc.plans = catalog
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		plans: model.DefaultPlanCatalog(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
