package usecase

import (
	"context"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/service/billing"
	"github.com/decide-lab/decidehub/pkg/utils/errutil"
	"github.com/decide-lab/decidehub/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// proSubscriptionPeriod is the local mirror of the pro plan's billing
// period. The provider remains the source of truth; this only seeds the
// mirror row written on checkout completion.
const proSubscriptionPeriod = 30 * 24 * time.Hour

// CheckoutResult is the created provider checkout session
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreateCheckout creates a payment session for a plan purchase. The pro
// plan opens a monthly subscription, premium a one-time payment. The price
// is resolved from the product store, provisioning it on first use.
func (uc *UseCases) CreateCheckout(ctx context.Context, userID types.UserID, plan types.Plan, origin string) (*CheckoutResult, error) {
	if uc.billing == nil {
		return nil, goerr.New("billing is not configured")
	}
	if !plan.IsValid() {
		return nil, goerr.Wrap(ErrInvalidPlan, "unknown plan", goerr.V("plan", plan))
	}
	if userID == "" {
		return nil, goerr.New("user ID is required")
	}

	product, err := uc.ensureProduct(ctx, plan)
	if err != nil {
		return nil, err
	}

	mode := billing.ModePayment
	if plan.Recurring() {
		mode = billing.ModeSubscription
	}

	session, err := uc.billing.CreateCheckoutSession(ctx, billing.CheckoutParams{
		PriceID:    product.StripePriceID,
		Mode:       mode,
		SuccessURL: origin + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/pricing",
		Metadata: map[string]string{
			"userId": userID.String(),
			"plan":   plan.String(),
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create checkout session",
			goerr.V("userID", userID),
			goerr.V("plan", plan),
		)
	}

	return &CheckoutResult{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// ensureProduct resolves the provider price for a plan, provisioning the
// product and price pair on first use and persisting the mapping.
func (uc *UseCases) ensureProduct(ctx context.Context, plan types.Plan) (*model.Product, error) {
	product, err := uc.repo.Product().GetByPlan(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve product", goerr.V("plan", plan))
	}
	if product != nil {
		return product, nil
	}

	spec := uc.plans.Get(plan)
	if spec == nil {
		return nil, goerr.Wrap(ErrProductNotFound, "plan is not in the catalog", goerr.V("plan", plan))
	}

	provisioned, err := uc.billing.EnsurePrice(ctx, billing.ProductSpec{
		Name:        spec.Name,
		Description: spec.Description,
		Amount:      spec.Amount,
		Currency:    spec.Currency,
		Recurring:   plan.Recurring(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to provision price", goerr.V("plan", plan))
	}

	product = &model.Product{
		PlanName:        plan,
		StripeProductID: provisioned.ProductID,
		StripePriceID:   provisioned.PriceID,
		Amount:          spec.Amount,
		Currency:        spec.Currency,
		Interval:        spec.Interval,
	}
	if err := uc.repo.Product().Upsert(ctx, product); err != nil {
		return nil, goerr.Wrap(err, "failed to persist product", goerr.V("plan", plan))
	}

	return product, nil
}

// SetupProducts idempotently provisions the whole plan catalog with the
// payment provider and persists the resulting product rows.
func (uc *UseCases) SetupProducts(ctx context.Context) ([]*model.Product, error) {
	if uc.billing == nil {
		return nil, goerr.New("billing is not configured")
	}

	logger := logging.From(ctx)

	products := make([]*model.Product, 0, len(uc.plans.Plans))
	for _, spec := range uc.plans.Plans {
		provisioned, err := uc.billing.EnsurePrice(ctx, billing.ProductSpec{
			Name:        spec.Name,
			Description: spec.Description,
			Amount:      spec.Amount,
			Currency:    spec.Currency,
			Recurring:   spec.Plan.Recurring(),
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to provision price", goerr.V("plan", spec.Plan))
		}

		product := &model.Product{
			PlanName:        spec.Plan,
			StripeProductID: provisioned.ProductID,
			StripePriceID:   provisioned.PriceID,
			Amount:          spec.Amount,
			Currency:        spec.Currency,
			Interval:        spec.Interval,
		}
		if err := uc.repo.Product().Upsert(ctx, product); err != nil {
			return nil, goerr.Wrap(err, "failed to persist product", goerr.V("plan", spec.Plan))
		}

		logger.Info("provisioned plan",
			"plan", spec.Plan,
			"product", provisioned.ProductID,
			"price", provisioned.PriceID,
		)
		products = append(products, product)
	}

	return products, nil
}

// HandleWebhook applies one verified payment provider event to the local
// entitlement state. Signature failures are rejected; everything after
// verification is best-effort so the provider does not redeliver endlessly.
func (uc *UseCases) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if uc.billing == nil {
		return goerr.New("billing is not configured")
	}

	event, err := uc.billing.VerifyWebhook(payload, signature)
	if err != nil {
		return goerr.Wrap(ErrSignatureInvalid, "webhook rejected", goerr.V("cause", err.Error()))
	}

	logger := logging.From(ctx)
	logger.Info("webhook event", "type", event.Type)

	switch event.Type {
	case billing.EventCheckoutCompleted:
		uc.applyCheckoutCompleted(ctx, event.Checkout)
	case billing.EventSubscriptionDeleted:
		uc.applySubscriptionDeleted(ctx, event.Subscription)
	default:
		logger.Info("unhandled event type", "type", event.Type)
	}

	return nil
}

func (uc *UseCases) applyCheckoutCompleted(ctx context.Context, checkout *billing.CheckoutCompleted) {
	logger := logging.From(ctx)

	if checkout == nil {
		return
	}

	userID := types.UserID(checkout.Metadata["userId"])
	planName := checkout.Metadata["plan"]
	if userID == "" || planName == "" {
		logger.Error("missing metadata in checkout session")
		return
	}

	role := types.RolePro
	if planName == types.PlanPremium.String() {
		role = types.RolePremium
	}

	if err := uc.repo.Entitlement().SetRole(ctx, userID, role); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err,
			"failed to update role",
			goerr.V("userID", userID),
			goerr.V("role", role),
		), "webhook entitlement write failed")
	}

	now := time.Now().UTC()
	sub := &model.Subscription{
		UserID:               userID,
		Status:               types.SubscriptionActive,
		StripeCustomerID:     checkout.CustomerID,
		StripeSubscriptionID: checkout.SubscriptionID,
		StripePriceID:        checkout.PriceID,
		CurrentPeriodStart:   &now,
	}
	if role == types.RolePro {
		periodEnd := now.Add(proSubscriptionPeriod)
		sub.CurrentPeriodEnd = &periodEnd
	}
	if err := uc.repo.Subscription().Upsert(ctx, sub); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err,
			"failed to update subscription",
			goerr.V("userID", userID),
		), "webhook subscription write failed")
	}

	logger.Info("upgraded user", "userID", userID, "role", role)
}

func (uc *UseCases) applySubscriptionDeleted(ctx context.Context, deleted *billing.SubscriptionDeleted) {
	logger := logging.From(ctx)

	if deleted == nil || deleted.CustomerID == "" {
		return
	}

	sub, err := uc.repo.Subscription().FindByCustomerID(ctx, deleted.CustomerID)
	if err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err,
			"failed to look up subscription",
			goerr.V("customerID", deleted.CustomerID),
		), "webhook subscription lookup failed")
		return
	}
	if sub == nil {
		return
	}

	if err := uc.repo.Entitlement().SetRole(ctx, sub.UserID, types.RoleFree); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err,
			"failed to downgrade role",
			goerr.V("userID", sub.UserID),
		), "webhook entitlement write failed")
	}

	sub.Status = types.SubscriptionInactive
	if err := uc.repo.Subscription().Upsert(ctx, sub); err != nil {
		_ = errutil.Handle(ctx, goerr.Wrap(err,
			"failed to deactivate subscription",
			goerr.V("userID", sub.UserID),
		), "webhook subscription write failed")
	}

	logger.Info("downgraded user", "userID", sub.UserID)
}
