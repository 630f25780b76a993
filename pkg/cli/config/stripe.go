package config

import (
	"github.com/decide-lab/decidehub/pkg/service/billing"
	"github.com/urfave/cli/v3"
)

// Stripe holds configuration for the Stripe billing client
type Stripe struct {
	secretKey     string
	webhookSecret string
}

// Flags returns CLI flags for Stripe configuration
func (s *Stripe) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "stripe-secret-key",
			Usage:       "Stripe API secret key",
			Sources:     cli.EnvVars("DECIDEHUB_STRIPE_SECRET_KEY"),
			Destination: &s.secretKey,
		},
		&cli.StringFlag{
			Name:        "stripe-webhook-secret",
			Usage:       "Stripe webhook signing secret",
			Sources:     cli.EnvVars("DECIDEHUB_STRIPE_WEBHOOK_SECRET"),
			Destination: &s.webhookSecret,
		},
	}
}

// Configure creates a Stripe billing client from the configured flags.
// Returns nil if the secret key is not configured (checkout and webhook
// handling will be disabled).
func (s *Stripe) Configure() (billing.Service, error) {
	if s.secretKey == "" {
		return nil, nil
	}

	return billing.New(s.secretKey, s.webhookSecret)
}
