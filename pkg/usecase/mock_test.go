package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/interfaces"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/repository/memory"
	"github.com/decide-lab/decidehub/pkg/service/billing"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

// Provider-shaped upstream failures for exercising error classification
var (
	errRateLimited    = errors.New("429: too many requests")
	errQuotaExhausted = errors.New("insufficient credit balance")
	errUpstreamBoom   = errors.New("connection reset by peer")
)

// faultyCaseRepo fails every read so infrastructure errors can be told apart
// from missing records. The remaining methods delegate to the embedded repo.
type faultyCaseRepo struct {
	interfaces.CaseRepository
	getErr error
}

func (r *faultyCaseRepo) Get(ctx context.Context, id types.CaseID) (*model.DecisionCase, error) {
	return nil, r.getErr
}

// faultyRepo swaps the case repository of a working repository for a broken one
type faultyRepo struct {
	interfaces.Repository
	cases interfaces.CaseRepository
}

func (r *faultyRepo) Case() interfaces.CaseRepository {
	return r.cases
}

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"{}"}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	prompts      []string
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// newCannedLLM returns a client that records prompts and answers every
// request with the given payload.
func newCannedLLM(payload string) *mockLLMClient {
	c := &mockLLMClient{}
	c.newSessionFn = func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
		return &mockLLMSession{
			generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
				for _, in := range input {
					if text, ok := in.(gollem.Text); ok {
						c.prompts = append(c.prompts, string(text))
					}
				}
				return &gollem.Response{Texts: []string{payload}}, nil
			},
		}, nil
	}
	return c
}

// newFailingLLM returns a client whose sessions fail with err on generation
func newFailingLLM(err error) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return nil, err
				},
			}, nil
		},
	}
}

// mockBillingService is a mock billing.Service recording every call
type mockBillingService struct {
	ensurePriceFn    func(ctx context.Context, spec billing.ProductSpec) (*billing.ProvisionedPrice, error)
	createCheckoutFn func(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error)
	verifyWebhookFn  func(payload []byte, signature string) (*billing.WebhookEvent, error)

	ensuredSpecs   []billing.ProductSpec
	checkoutParams []billing.CheckoutParams
}

func (m *mockBillingService) EnsurePrice(ctx context.Context, spec billing.ProductSpec) (*billing.ProvisionedPrice, error) {
	m.ensuredSpecs = append(m.ensuredSpecs, spec)
	if m.ensurePriceFn != nil {
		return m.ensurePriceFn(ctx, spec)
	}
	return &billing.ProvisionedPrice{ProductID: "prod_mock", PriceID: "price_mock"}, nil
}

func (m *mockBillingService) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	m.checkoutParams = append(m.checkoutParams, params)
	if m.createCheckoutFn != nil {
		return m.createCheckoutFn(ctx, params)
	}
	return &billing.CheckoutSession{
		ID:   "cs_mock",
		URL:  "https://checkout.example.com/cs_mock",
		Mode: params.Mode,
	}, nil
}

func (m *mockBillingService) VerifyWebhook(payload []byte, signature string) (*billing.WebhookEvent, error) {
	if m.verifyWebhookFn != nil {
		return m.verifyWebhookFn(payload, signature)
	}
	return &billing.WebhookEvent{Type: "unknown"}, nil
}

// seedCase stores a decision case directly through the repository
func seedCase(t *testing.T, repo *memory.Memory, ownerID types.UserID) *model.DecisionCase {
	t.Helper()

	created, err := repo.Case().Create(context.Background(), &model.DecisionCase{
		OwnerID:     ownerID,
		Title:       "Expand into the EU market",
		Description: "Open a regional office to serve EU customers",
		Objectives:  "Grow revenue 30% in two years",
		Constraints: "Budget capped at 2M",
		Risks:       "Regulatory complexity",
	})
	gt.NoError(t, err).Required()
	return created
}

// waitNotifications polls until the user has at least want notifications.
// Notification writes are dispatched on a background goroutine.
func waitNotifications(t *testing.T, repo *memory.Memory, userID types.UserID, want int) []*model.Notification {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		list, err := repo.Notification().ListByUser(context.Background(), userID, 0)
		gt.NoError(t, err).Required()
		if len(list) >= want {
			return list
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %d notifications", want)
	return nil
}
