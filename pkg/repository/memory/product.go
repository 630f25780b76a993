package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type productRepository struct {
	mu       sync.RWMutex
	products map[types.Plan]*model.Product
}

func newProductRepository() *productRepository {
	return &productRepository{
		products: make(map[types.Plan]*model.Product),
	}
}

func copyProduct(p *model.Product) *model.Product {
	copied := *p
	return &copied
}

func (r *productRepository) GetByPlan(ctx context.Context, plan types.Plan) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.products[plan]
	if !exists {
		return nil, nil
	}

	return copyProduct(p), nil
}

func (r *productRepository) Upsert(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !p.PlanName.IsValid() {
		return goerr.New("invalid plan name", goerr.V("plan", p.PlanName))
	}

	stored := copyProduct(p)
	stored.UpdatedAt = time.Now().UTC()
	r.products[stored.PlanName] = stored

	return nil
}

func (r *productRepository) List(ctx context.Context) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, copyProduct(p))
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].PlanName < products[j].PlanName
	})

	return products, nil
}
