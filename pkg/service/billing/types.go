package billing

// CheckoutMode selects how a checkout session is billed
type CheckoutMode string

const (
	// ModeSubscription bills monthly until cancelled
	ModeSubscription CheckoutMode = "subscription"
	// ModePayment bills once
	ModePayment CheckoutMode = "payment"
)

// ProductSpec describes a product/price pair to provision with the payment
// provider.
type ProductSpec struct {
	Name        string
	Description string
	Amount      int64
	Currency    string
	Recurring   bool
}

// ProvisionedPrice holds the provider identifiers of an ensured
// product/price pair.
type ProvisionedPrice struct {
	ProductID string
	PriceID   string
}

// CheckoutParams describes a checkout session to create
type CheckoutParams struct {
	PriceID    string
	Mode       CheckoutMode
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the created provider session
type CheckoutSession struct {
	ID   string
	URL  string
	Mode CheckoutMode
}

// Event types consumed from the payment provider webhook
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// CheckoutCompleted carries the fields of a checkout.session.completed event
// that the entitlement state machine consumes.
type CheckoutCompleted struct {
	Metadata       map[string]string
	CustomerID     string
	SubscriptionID string
	PriceID        string
}

// SubscriptionDeleted carries the fields of a customer.subscription.deleted
// event.
type SubscriptionDeleted struct {
	CustomerID string
}

// WebhookEvent is a provider webhook event after signature verification.
// Exactly one of Checkout / Subscription is set for the recognized event
// types; both are nil for event types this service ignores.
type WebhookEvent struct {
	Type         string
	Checkout     *CheckoutCompleted
	Subscription *SubscriptionDeleted
}
