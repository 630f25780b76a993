package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// ProductRepository defines the interface for plan/price mapping records
type ProductRepository interface {
	// GetByPlan retrieves the product record for a plan. Returns nil, nil
	// if the plan has not been provisioned yet.
	GetByPlan(ctx context.Context, plan types.Plan) (*model.Product, error)

	// Upsert creates or replaces the product record for p.PlanName
	Upsert(ctx context.Context, p *model.Product) error

	// List retrieves all provisioned products
	List(ctx context.Context) ([]*model.Product, error)
}
