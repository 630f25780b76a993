package repository_test

import (
	"context"
	"testing"

	"github.com/decide-lab/decidehub/pkg/domain/interfaces"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

func runProductRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("GetByPlan returns nil before provisioning", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p, err := repo.Product().GetByPlan(ctx, types.PlanPro)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if p != nil {
			t.Errorf("expected nil, got %+v", p)
		}
	})

	t.Run("Upsert then GetByPlan round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Product().Upsert(ctx, &model.Product{
			PlanName:        types.PlanPro,
			StripeProductID: "prod_123",
			StripePriceID:   "price_456",
			Amount:          2900,
			Currency:        "usd",
			Interval:        "month",
		}); err != nil {
			t.Fatalf("failed to upsert product: %v", err)
		}

		p, err := repo.Product().GetByPlan(ctx, types.PlanPro)
		if err != nil {
			t.Fatalf("failed to get product: %v", err)
		}
		if p == nil {
			t.Fatal("expected product")
		}
		if p.StripePriceID != "price_456" {
			t.Errorf("expected price ID preserved, got %s", p.StripePriceID)
		}
		if p.Amount != 2900 {
			t.Errorf("expected amount preserved, got %d", p.Amount)
		}
	})

	t.Run("Upsert rejects invalid plan", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Product().Upsert(ctx, &model.Product{
			PlanName: types.Plan("enterprise"),
		})
		if err == nil {
			t.Fatal("expected error for invalid plan")
		}
	})

	t.Run("List returns all provisioned products", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, plan := range types.AllPlans() {
			if err := repo.Product().Upsert(ctx, &model.Product{
				PlanName:        plan,
				StripeProductID: "prod_" + plan.String(),
				StripePriceID:   "price_" + plan.String(),
				Amount:          1000,
				Currency:        "usd",
			}); err != nil {
				t.Fatalf("failed to upsert product: %v", err)
			}
		}

		products, err := repo.Product().List(ctx)
		if err != nil {
			t.Fatalf("failed to list products: %v", err)
		}
		if len(products) != len(types.AllPlans()) {
			t.Errorf("expected %d products, got %d", len(types.AllPlans()), len(products))
		}
	})
}

func runProfileRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then GetByEmail resolves user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Profile().Put(ctx, &model.Profile{
			UserID:   "user-1",
			Email:    "alice@example.com",
			FullName: "Alice",
		}); err != nil {
			t.Fatalf("failed to put profile: %v", err)
		}

		p, err := repo.Profile().GetByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("failed to get profile by email: %v", err)
		}
		if p == nil {
			t.Fatal("expected profile")
		}
		if p.UserID != "user-1" {
			t.Errorf("expected user-1, got %s", p.UserID)
		}
	})

	t.Run("GetByEmail returns nil for unknown email", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p, err := repo.Profile().GetByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("failed to get profile by email: %v", err)
		}
		if p != nil {
			t.Errorf("expected nil, got %+v", p)
		}
	})
}

func TestMemoryProductRepository(t *testing.T) {
	runProductRepositoryTest(t, newMemoryRepository)
	runProfileRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreProductRepository(t *testing.T) {
	runProductRepositoryTest(t, newFirestoreRepository)
	runProfileRepositoryTest(t, newFirestoreRepository)
}
