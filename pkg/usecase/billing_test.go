package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/repository/memory"
	"github.com/decide-lab/decidehub/pkg/service/billing"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestCreateCheckout(t *testing.T) {
	t.Run("pro plan opens a subscription session", func(t *testing.T) {
		repo := memory.New()
		svc := &mockBillingService{}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		result, err := uc.CreateCheckout(context.Background(), "user-1", types.PlanPro, "https://app.example.com")
		gt.NoError(t, err).Required()

		gt.Value(t, result.SessionID).Equal("cs_mock")
		gt.Value(t, result.URL).Equal("https://checkout.example.com/cs_mock")

		gt.Array(t, svc.checkoutParams).Length(1).Required()
		params := svc.checkoutParams[0]
		gt.Value(t, params.Mode).Equal(billing.ModeSubscription)
		gt.Value(t, params.SuccessURL).Equal("https://app.example.com/success?session_id={CHECKOUT_SESSION_ID}")
		gt.Value(t, params.CancelURL).Equal("https://app.example.com/pricing")
		gt.Value(t, params.Metadata["userId"]).Equal("user-1")
		gt.Value(t, params.Metadata["plan"]).Equal("pro")

		gt.Array(t, svc.ensuredSpecs).Length(1).Required()
		spec := svc.ensuredSpecs[0]
		gt.Value(t, spec.Name).Equal("Decision Hub Pro")
		gt.Value(t, spec.Amount).Equal(int64(1000))
		gt.Value(t, spec.Currency).Equal("gbp")
		gt.Value(t, spec.Recurring).Equal(true)
	})

	t.Run("premium plan opens a one-time payment session", func(t *testing.T) {
		repo := memory.New()
		svc := &mockBillingService{}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		_, err := uc.CreateCheckout(context.Background(), "user-1", types.PlanPremium, "https://app.example.com")
		gt.NoError(t, err).Required()

		gt.Array(t, svc.checkoutParams).Length(1).Required()
		gt.Value(t, svc.checkoutParams[0].Mode).Equal(billing.ModePayment)

		gt.Array(t, svc.ensuredSpecs).Length(1).Required()
		gt.Value(t, svc.ensuredSpecs[0].Name).Equal("Decision Hub Lifetime")
		gt.Value(t, svc.ensuredSpecs[0].Amount).Equal(int64(5000))
		gt.Value(t, svc.ensuredSpecs[0].Recurring).Equal(false)
	})

	t.Run("reuses the persisted product on later checkouts", func(t *testing.T) {
		repo := memory.New()
		svc := &mockBillingService{}
		uc := usecase.New(repo, usecase.WithBilling(svc))
		ctx := context.Background()

		_, err := uc.CreateCheckout(ctx, "user-1", types.PlanPro, "https://app.example.com")
		gt.NoError(t, err).Required()
		_, err = uc.CreateCheckout(ctx, "user-2", types.PlanPro, "https://app.example.com")
		gt.NoError(t, err).Required()

		gt.Array(t, svc.ensuredSpecs).Length(1)
		gt.Array(t, svc.checkoutParams).Length(2)

		product, err := repo.Product().GetByPlan(ctx, types.PlanPro)
		gt.NoError(t, err).Required()
		gt.Value(t, product).NotNil().Required()
		gt.Value(t, product.StripePriceID).Equal("price_mock")
	})

	t.Run("rejects unknown plans", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithBilling(&mockBillingService{}))

		_, err := uc.CreateCheckout(context.Background(), "user-1", "enterprise", "https://app.example.com")
		gt.Error(t, err).Is(usecase.ErrInvalidPlan)
	})

	t.Run("requires a configured billing service", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.CreateCheckout(context.Background(), "user-1", types.PlanPro, "https://app.example.com")
		gt.Value(t, err).NotNil()
	})
}

func TestSetupProducts(t *testing.T) {
	repo := memory.New()
	svc := &mockBillingService{}
	uc := usecase.New(repo, usecase.WithBilling(svc))
	ctx := context.Background()

	products, err := uc.SetupProducts(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, products).Length(2)
	gt.Array(t, svc.ensuredSpecs).Length(2)

	stored, err := repo.Product().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, stored).Length(2)

	// rerunning provisions against the provider again but stays idempotent
	// locally
	_, err = uc.SetupProducts(ctx)
	gt.NoError(t, err).Required()

	stored, err = repo.Product().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, stored).Length(2)
}

func TestHandleWebhook(t *testing.T) {
	checkoutEvent := func(plan string) *billing.WebhookEvent {
		return &billing.WebhookEvent{
			Type: billing.EventCheckoutCompleted,
			Checkout: &billing.CheckoutCompleted{
				Metadata: map[string]string{
					"userId": "user-1",
					"plan":   plan,
				},
				CustomerID:     "cus_001",
				SubscriptionID: "sub_001",
				PriceID:        "price_001",
			},
		}
	}

	t.Run("checkout completed upgrades to pro with a period end", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return checkoutEvent("pro"), nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(ctx, []byte("{}"), "sig")).Required()

		role, err := repo.Entitlement().GetRole(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RolePro)

		sub, err := repo.Subscription().Get(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, sub).NotNil().Required()
		gt.Value(t, sub.Status).Equal(types.SubscriptionActive)
		gt.Value(t, sub.StripeCustomerID).Equal("cus_001")
		gt.Value(t, sub.CurrentPeriodStart).NotNil()
		gt.Value(t, sub.CurrentPeriodEnd).NotNil()
	})

	t.Run("checkout completed upgrades to premium without a period end", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return checkoutEvent("premium"), nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(ctx, []byte("{}"), "sig")).Required()

		role, err := repo.Entitlement().GetRole(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RolePremium)

		sub, err := repo.Subscription().Get(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, sub).NotNil().Required()
		gt.Value(t, sub.CurrentPeriodEnd).Nil()
	})

	t.Run("redelivered checkout completed events are idempotent", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return checkoutEvent("pro"), nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(ctx, []byte("{}"), "sig")).Required()

		first, err := repo.Subscription().Get(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, first).NotNil().Required()
		gt.Value(t, first.CurrentPeriodEnd).NotNil().Required()
		firstEnd := *first.CurrentPeriodEnd

		gt.NoError(t, uc.HandleWebhook(ctx, []byte("{}"), "sig")).Required()

		role, err := repo.Entitlement().GetRole(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RolePro)

		sub, err := repo.Subscription().Get(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, sub).NotNil().Required()
		gt.Value(t, sub.Status).Equal(types.SubscriptionActive)
		gt.Value(t, sub.StripeSubscriptionID).Equal("sub_001")

		// the redelivery reseeds the same 30 day window rather than
		// stacking another period on top of the first
		gt.Value(t, sub.CurrentPeriodEnd).NotNil().Required()
		gt.Value(t, sub.CurrentPeriodEnd.Before(firstEnd.Add(time.Hour))).Equal(true)
	})

	t.Run("checkout without metadata is acknowledged without state changes", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return &billing.WebhookEvent{
					Type:     billing.EventCheckoutCompleted,
					Checkout: &billing.CheckoutCompleted{CustomerID: "cus_001"},
				}, nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(ctx, []byte("{}"), "sig")).Required()

		role, err := repo.Entitlement().GetRole(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RoleFree)
	})

	t.Run("subscription deleted downgrades to free", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		gt.NoError(t, repo.Entitlement().SetRole(ctx, "user-1", types.RolePro)).Required()
		gt.NoError(t, repo.Subscription().Upsert(ctx, &model.Subscription{
			UserID:           "user-1",
			Status:           types.SubscriptionActive,
			StripeCustomerID: "cus_001",
		})).Required()

		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return &billing.WebhookEvent{
					Type:         billing.EventSubscriptionDeleted,
					Subscription: &billing.SubscriptionDeleted{CustomerID: "cus_001"},
				}, nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(ctx, []byte("{}"), "sig")).Required()

		role, err := repo.Entitlement().GetRole(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, role).Equal(types.RoleFree)

		sub, err := repo.Subscription().Get(ctx, "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, sub).NotNil().Required()
		gt.Value(t, sub.Status).Equal(types.SubscriptionInactive)
	})

	t.Run("subscription deleted for an unknown customer is a no-op", func(t *testing.T) {
		repo := memory.New()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return &billing.WebhookEvent{
					Type:         billing.EventSubscriptionDeleted,
					Subscription: &billing.SubscriptionDeleted{CustomerID: "cus_unknown"},
				}, nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	})

	t.Run("unrecognized event types are acknowledged", func(t *testing.T) {
		repo := memory.New()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return &billing.WebhookEvent{Type: "invoice.paid"}, nil
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		gt.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	})

	t.Run("signature failures are rejected", func(t *testing.T) {
		repo := memory.New()
		svc := &mockBillingService{
			verifyWebhookFn: func(payload []byte, signature string) (*billing.WebhookEvent, error) {
				return nil, errUpstreamBoom
			},
		}
		uc := usecase.New(repo, usecase.WithBilling(svc))

		err := uc.HandleWebhook(context.Background(), []byte("{}"), "bad-sig")
		gt.Error(t, err).Is(usecase.ErrSignatureInvalid)
	})
}
