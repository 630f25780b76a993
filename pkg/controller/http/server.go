package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/decide-lab/decidehub/pkg/utils/errutil"
	"github.com/decide-lab/decidehub/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsHeaders)

	// Function endpoints. Callers are trusted to supply their own user IDs;
	// authentication happens upstream of this service.
	r.Route("/functions", func(r chi.Router) {
		r.Post("/analyze-decision", s.handleAnalyzeDecision)
		r.Post("/simulate-risk", s.handleSimulateRisk)
		r.Post("/can-create-simulation", s.handleCanCreateSimulation)
		r.Post("/generate-insights", s.handleGenerateInsights)
		r.Post("/create-checkout", s.handleCreateCheckout)
		r.Post("/setup-stripe-products", s.handleSetupProducts)
		r.Post("/export-decision", s.handleExportDecision)
		r.Post("/invite-member", s.handleInviteMember)
		r.Post("/create-invitation", s.handleCreateInvitation)
		r.Post("/accept-invitation", s.handleAcceptInvitation)
	})

	// Case and notification resources
	r.Route("/api", func(r chi.Router) {
		r.Post("/cases", s.handleCreateCase)
		r.Get("/cases", s.handleListCases)
		r.Get("/cases/{caseID}", s.handleGetCase)
		r.Put("/cases/{caseID}", s.handleUpdateCase)
		r.Get("/cases/{caseID}/analyses", s.handleListAnalyses)
		r.Get("/cases/{caseID}/revisions", s.handleListRevisions)
		r.Get("/cases/{caseID}/members", s.handleListMembers)
		r.Get("/notifications", s.handleListNotifications)
		r.Post("/notifications/{notificationID}/read", s.handleMarkNotificationRead)
	})

	// Payment provider webhook. Signature verification happens in the
	// handler, not a middleware, so a missing header still gets the JSON
	// error shape.
	r.Post("/hooks/stripe", s.handleStripeWebhook)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// corsHeaders applies the permissive CORS policy of the original function
// deployment and short-circuits preflight requests.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusFor maps a use case error onto the HTTP status taxonomy
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrInvitationNotFound),
		errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUpstreamRateLimited),
		errors.Is(err, usecase.ErrSimulationQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, usecase.ErrUpstreamQuotaExhausted):
		return http.StatusPaymentRequired
	case errors.Is(err, usecase.ErrInvalidPlan),
		errors.Is(err, usecase.ErrSignatureInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
}

func respondJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Error("failed to encode response", "error", err.Error())
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body")
	}
	return nil
}
