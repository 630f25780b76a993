package usecase

import (
	"errors"

	"github.com/decide-lab/decidehub/pkg/domain/interfaces"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCaseNotFound       = errors.New("decision case not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProductNotFound    = errors.New("product not found")

	// Upstream AI provider errors
	ErrUpstreamRateLimited    = errors.New("rate limit exceeded, please try again later")
	ErrUpstreamQuotaExhausted = errors.New("AI credits exhausted, please add credits to continue")
	ErrUpstreamFailure        = errors.New("AI request failed")
	ErrParseFailure           = errors.New("failed to parse AI response")

	// Billing errors
	ErrInvalidPlan      = errors.New("invalid plan selected")
	ErrSignatureInvalid = errors.New("webhook signature verification failed")

	// Quota errors
	ErrSimulationQuotaExceeded = errors.New("monthly simulation limit reached")
)

// notFound reports whether a repository error means the record is missing,
// as opposed to the read itself failing. Only the former maps to a 404-class
// sentinel; everything else stays a persistence failure.
func notFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}
