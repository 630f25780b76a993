package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpctrl "github.com/decide-lab/decidehub/pkg/controller/http"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/repository/memory"
	"github.com/decide-lab/decidehub/pkg/service/billing"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

const analysisResponse = `{
  "summary": "Proceed with the phased rollout",
  "key_arguments": {"for": ["market pull"], "against": ["cost"]},
  "decision_paths": [{"name": "Phased", "description": "Region by region", "pros": ["safe"], "cons": ["slow"], "probability_success": 0.7}],
  "effects_tradeoffs": {"short_term": ["burn"], "long_term": ["share"], "risks": ["drift"], "opportunities": ["reach"]},
  "probability_reasoning": "Comparable launches",
  "blind_spots": ["churn"],
  "recommended_path": "Phased",
  "follow_up_questions": ["Runway?"]
}`

// cannedSession answers every generation request with a fixed payload
type cannedSession struct {
	payload string
	err     error
}

func (s *cannedSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &gollem.Response{Texts: []string{s.payload}}, nil
}

func (s *cannedSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *cannedSession) History() (*gollem.History, error) { return nil, nil }

func (s *cannedSession) AppendHistory(*gollem.History) error { return nil }

func (s *cannedSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type cannedLLM struct {
	payload string
	err     error
}

func (c *cannedLLM) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &cannedSession{payload: c.payload, err: c.err}, nil
}

func (c *cannedLLM) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

type stubBilling struct {
	verifyErr bool
}

func (b *stubBilling) EnsurePrice(ctx context.Context, spec billing.ProductSpec) (*billing.ProvisionedPrice, error) {
	return &billing.ProvisionedPrice{ProductID: "prod_test", PriceID: "price_test"}, nil
}

func (b *stubBilling) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	return &billing.CheckoutSession{ID: "cs_test", URL: "https://checkout.example.com/cs_test", Mode: params.Mode}, nil
}

func (b *stubBilling) VerifyWebhook(payload []byte, signature string) (*billing.WebhookEvent, error) {
	if b.verifyErr || signature == "" {
		return nil, goerr.New("signature verification failed")
	}
	return &billing.WebhookEvent{Type: "unknown"}, nil
}

func newTestServer(t *testing.T, repo *memory.Memory, opts ...usecase.Option) *httpctrl.Server {
	t.Helper()
	return httpctrl.New(usecase.New(repo, opts...))
}

func postJSON(t *testing.T, srv *httpctrl.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func seedCase(t *testing.T, repo *memory.Memory, ownerID types.UserID) *model.DecisionCase {
	t.Helper()

	created, err := repo.Case().Create(context.Background(), &model.DecisionCase{
		OwnerID:     ownerID,
		Title:       "Open a Berlin office",
		Description: "Regional expansion",
		Constraints: "Budget capped",
	})
	gt.NoError(t, err).Required()
	return created
}

func TestAnalyzeDecisionEndpoint(t *testing.T) {
	t.Run("returns the stored analysis", func(t *testing.T) {
		repo := memory.New()
		c := seedCase(t, repo, "user-1")
		srv := newTestServer(t, repo, usecase.WithStandardLLM(&cannedLLM{payload: analysisResponse}))

		rec := postJSON(t, srv, "/functions/analyze-decision", map[string]string{"caseId": c.ID.String()})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var analysis model.Analysis
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis)).Required()
		gt.Value(t, analysis.CaseID).Equal(c.ID)
		gt.Value(t, analysis.RecommendedPath).Equal("Phased")
	})

	t.Run("unknown case is 404", func(t *testing.T) {
		repo := memory.New()
		srv := newTestServer(t, repo, usecase.WithStandardLLM(&cannedLLM{payload: analysisResponse}))

		rec := postJSON(t, srv, "/functions/analyze-decision", map[string]string{"caseId": types.NewCaseID().String()})
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)

		var body map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).NotEqual("")
	})

	t.Run("upstream rate limit is 429", func(t *testing.T) {
		repo := memory.New()
		c := seedCase(t, repo, "user-1")
		srv := newTestServer(t, repo, usecase.WithStandardLLM(&cannedLLM{err: goerr.New("429: rate limit exceeded")}))

		rec := postJSON(t, srv, "/functions/analyze-decision", map[string]string{"caseId": c.ID.String()})
		gt.Value(t, rec.Code).Equal(http.StatusTooManyRequests)
	})

	t.Run("exhausted credits is 402", func(t *testing.T) {
		repo := memory.New()
		c := seedCase(t, repo, "user-1")
		srv := newTestServer(t, repo, usecase.WithStandardLLM(&cannedLLM{err: goerr.New("insufficient credit balance")}))

		rec := postJSON(t, srv, "/functions/analyze-decision", map[string]string{"caseId": c.ID.String()})
		gt.Value(t, rec.Code).Equal(http.StatusPaymentRequired)
	})

	t.Run("missing caseId is 500-class error shape", func(t *testing.T) {
		repo := memory.New()
		srv := newTestServer(t, repo)

		rec := postJSON(t, srv, "/functions/analyze-decision", map[string]string{})
		gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
	})
}

func TestSimulationQuotaEndpoint(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	c := seedCase(t, repo, "user-free")

	for range usecase.FreeSimulationLimit {
		_, err := repo.Simulation().Create(ctx, &model.Simulation{CaseID: c.ID, OwnerID: "user-free"})
		gt.NoError(t, err).Required()
	}

	srv := newTestServer(t, repo, usecase.WithPremiumLLM(&cannedLLM{payload: "{}"}))

	rec := postJSON(t, srv, "/functions/can-create-simulation", map[string]string{"userId": "user-free"})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var quota usecase.SimulationQuota
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quota)).Required()
	gt.Value(t, quota.Allowed).Equal(false)

	// the dispatcher endpoint enforces the same quota
	rec = postJSON(t, srv, "/functions/simulate-risk", map[string]string{"caseId": c.ID.String()})
	gt.Value(t, rec.Code).Equal(http.StatusTooManyRequests)
}

func TestCreateCheckoutEndpoint(t *testing.T) {
	repo := memory.New()
	srv := newTestServer(t, repo, usecase.WithBilling(&stubBilling{}))

	data, err := json.Marshal(map[string]string{"userId": "user-1", "plan": "pro"})
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, "/functions/create-checkout", bytes.NewReader(data))
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var result usecase.CheckoutResult
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
	gt.Value(t, result.SessionID).Equal("cs_test")
	gt.Value(t, result.URL).Equal("https://checkout.example.com/cs_test")
}

func TestExportDecisionEndpoint(t *testing.T) {
	repo := memory.New()
	c := seedCase(t, repo, "user-1")
	srv := newTestServer(t, repo)

	rec := postJSON(t, srv, "/functions/export-decision", map[string]string{
		"caseId": c.ID.String(),
		"format": "csv",
	})

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Header().Get("Content-Type")).Equal("text/csv")
	gt.Value(t, strings.Contains(rec.Header().Get("Content-Disposition"), "attachment")).Equal(true)
	gt.Value(t, strings.HasPrefix(rec.Body.String(), `"Field","Value"`)).Equal(true)
}

func TestTeamEndpoints(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	c := seedCase(t, repo, "owner-1")

	gt.NoError(t, repo.Profile().Put(ctx, &model.Profile{
		UserID: "invitee-1",
		Email:  "invitee@example.com",
	})).Required()

	srv := newTestServer(t, repo)

	rec := postJSON(t, srv, "/functions/create-invitation", map[string]string{
		"caseId": c.ID.String(),
		"userId": "owner-1",
		"email":  "invitee@example.com",
		"role":   "editor",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var invitation model.TeamInvitation
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invitation)).Required()
	gt.Value(t, invitation.Status).Equal(types.InvitationPending)

	rec = postJSON(t, srv, "/functions/accept-invitation", map[string]string{
		"invitationId": invitation.ID.String(),
		"userId":       "invitee-1",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var member model.TeamMember
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &member)).Required()
	gt.Value(t, member.InvitedUserID).Equal(types.UserID("invitee-1"))
	gt.Value(t, member.Role).Equal(types.TeamRoleEditor)

	req := httptest.NewRequest(http.MethodGet, "/api/cases/"+c.ID.String()+"/members", nil)
	recList := httptest.NewRecorder()
	srv.ServeHTTP(recList, req)
	gt.Value(t, recList.Code).Equal(http.StatusOK)

	var members []*model.TeamMember
	gt.NoError(t, json.Unmarshal(recList.Body.Bytes(), &members)).Required()
	gt.Array(t, members).Length(1)
}

func TestCaseEndpoints(t *testing.T) {
	repo := memory.New()
	srv := newTestServer(t, repo)

	rec := postJSON(t, srv, "/api/cases", map[string]string{
		"owner_id":    "user-1",
		"title":       "Adopt a monorepo",
		"description": "Tooling consolidation",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created model.DecisionCase
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.Value(t, created.Status).Equal(types.CaseStatusDraft)

	req := httptest.NewRequest(http.MethodGet, "/api/cases?userId=user-1", nil)
	recList := httptest.NewRecorder()
	srv.ServeHTTP(recList, req)
	gt.Value(t, recList.Code).Equal(http.StatusOK)

	var cases []*model.DecisionCase
	gt.NoError(t, json.Unmarshal(recList.Body.Bytes(), &cases)).Required()
	gt.Array(t, cases).Length(1)

	update, err := json.Marshal(map[string]string{"status": "decided"})
	gt.NoError(t, err).Required()
	reqUpdate := httptest.NewRequest(http.MethodPut, "/api/cases/"+created.ID.String(), bytes.NewReader(update))
	recUpdate := httptest.NewRecorder()
	srv.ServeHTTP(recUpdate, reqUpdate)
	gt.Value(t, recUpdate.Code).Equal(http.StatusOK)

	var updated model.DecisionCase
	gt.NoError(t, json.Unmarshal(recUpdate.Body.Bytes(), &updated)).Required()
	gt.Value(t, updated.Status).Equal(types.CaseStatusDecided)
	gt.Value(t, updated.Title).Equal("Adopt a monorepo")
	gt.Value(t, updated.OwnerID).Equal(types.UserID("user-1"))
}

func TestStripeWebhookEndpoint(t *testing.T) {
	t.Run("missing signature is rejected", func(t *testing.T) {
		repo := memory.New()
		srv := newTestServer(t, repo, usecase.WithBilling(&stubBilling{}))

		req := httptest.NewRequest(http.MethodPost, "/hooks/stripe", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("verified events are acknowledged", func(t *testing.T) {
		repo := memory.New()
		srv := newTestServer(t, repo, usecase.WithBilling(&stubBilling{}))

		req := httptest.NewRequest(http.MethodPost, "/hooks/stripe", strings.NewReader("{}"))
		req.Header.Set("Stripe-Signature", "t=123,v1=abc")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var body map[string]bool
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.Value(t, body["received"]).Equal(true)
	})
}

func TestCORSPreflight(t *testing.T) {
	repo := memory.New()
	srv := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodOptions, "/functions/analyze-decision", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Header().Get("Access-Control-Allow-Origin")).Equal("*")
	gt.Value(t, rec.Header().Get("Access-Control-Allow-Headers")).NotEqual("")
}
