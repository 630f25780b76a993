package billing

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Service is the payment provider interface consumed by the billing use
// case. Implemented by Client against Stripe; tests substitute a mock.
type Service interface {
	// EnsurePrice provisions the product/price pair for spec if it does
	// not already exist. It never creates a duplicate price for the same
	// product+amount+currency.
	EnsurePrice(ctx context.Context, spec ProductSpec) (*ProvisionedPrice, error)

	// CreateCheckoutSession creates a checkout session and returns its ID
	// and redirect URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)

	// VerifyWebhook checks the payload signature against the shared secret
	// and parses the event. Returns an error on any verification failure.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// Client implements Service against the Stripe API
type Client struct {
	api           *client.API
	webhookSecret string
}

var _ Service = &Client{}

// New creates a Stripe-backed billing client
func New(secretKey, webhookSecret string) (*Client, error) {
	if secretKey == "" {
		return nil, goerr.New("stripe secret key is required")
	}

	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:           api,
		webhookSecret: webhookSecret,
	}, nil
}

// EnsurePrice provisions a product and price, reusing existing ones. The
// product is matched by name, the price by amount+currency under that
// product.
func (c *Client) EnsurePrice(ctx context.Context, spec ProductSpec) (*ProvisionedPrice, error) {
	product, err := c.findProductByName(ctx, spec.Name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		created, err := c.api.Products.New(&stripe.ProductParams{
			Params:      stripe.Params{Context: ctx},
			Name:        stripe.String(spec.Name),
			Description: stripe.String(spec.Description),
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create product", goerr.V("name", spec.Name))
		}
		product = created
	}

	price, err := c.findPrice(ctx, product.ID, spec.Amount, spec.Currency)
	if err != nil {
		return nil, err
	}
	if price == nil {
		params := &stripe.PriceParams{
			Params:     stripe.Params{Context: ctx},
			Product:    stripe.String(product.ID),
			UnitAmount: stripe.Int64(spec.Amount),
			Currency:   stripe.String(spec.Currency),
		}
		if spec.Recurring {
			params.Recurring = &stripe.PriceRecurringParams{
				Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
			}
		}
		created, err := c.api.Prices.New(params)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create price",
				goerr.V("product", product.ID),
				goerr.V("amount", spec.Amount),
			)
		}
		price = created
	}

	return &ProvisionedPrice{
		ProductID: product.ID,
		PriceID:   price.ID,
	}, nil
}

func (c *Client) findProductByName(ctx context.Context, name string) (*stripe.Product, error) {
	iter := c.api.Products.List(&stripe.ProductListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(100)},
	})
	for iter.Next() {
		if p := iter.Product(); p.Name == name {
			return p, nil
		}
	}
	if err := iter.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to list products")
	}
	return nil, nil
}

func (c *Client) findPrice(ctx context.Context, productID string, amount int64, currency string) (*stripe.Price, error) {
	iter := c.api.Prices.List(&stripe.PriceListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(100)},
		Product:    stripe.String(productID),
	})
	for iter.Next() {
		p := iter.Price()
		if p.UnitAmount == amount && string(p.Currency) == currency {
			return p, nil
		}
	}
	if err := iter.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to list prices", goerr.V("product", productID))
	}
	return nil, nil
}

// CreateCheckoutSession creates a checkout session for a single line item
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	mode := stripe.CheckoutSessionModePayment
	if params.Mode == ModeSubscription {
		mode = stripe.CheckoutSessionModeSubscription
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	for k, v := range params.Metadata {
		sessionParams.AddMetadata(k, v)
	}

	session, err := c.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create checkout session", goerr.V("price", params.PriceID))
	}

	return &CheckoutSession{
		ID:   session.ID,
		URL:  session.URL,
		Mode: params.Mode,
	}, nil
}

// VerifyWebhook verifies the signature header and parses recognized events.
// Unrecognized event types come back with Type set and no payload, so the
// caller can acknowledge them as no-ops.
func (c *Client) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if signature == "" {
		return nil, goerr.New("missing webhook signature header")
	}

	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, goerr.Wrap(err, "webhook signature verification failed")
	}

	out := &WebhookEvent{Type: string(event.Type)}

	switch out.Type {
	case EventCheckoutCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, goerr.Wrap(err, "failed to parse checkout session from event")
		}
		checkout := &CheckoutCompleted{
			Metadata: session.Metadata,
		}
		if session.Customer != nil {
			checkout.CustomerID = session.Customer.ID
		}
		if session.Subscription != nil {
			checkout.SubscriptionID = session.Subscription.ID
		}
		out.Checkout = checkout

	case EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, goerr.Wrap(err, "failed to parse subscription from event")
		}
		deleted := &SubscriptionDeleted{}
		if sub.Customer != nil {
			deleted.CustomerID = sub.Customer.ID
		}
		out.Subscription = deleted
	}

	return out, nil
}
