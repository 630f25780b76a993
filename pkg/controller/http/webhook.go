package http

import (
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// handleStripeWebhook feeds one provider event into the entitlement state
// machine. Anything after signature verification is acknowledged with 200 so
// the provider does not retry events we cannot act on.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		handleError(w, r, goerr.Wrap(err, "failed to read webhook payload"))
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if err := s.uc.HandleWebhook(r.Context(), payload, signature); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, map[string]bool{"received": true})
}
