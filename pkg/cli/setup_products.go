package cli

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/cli/config"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/decide-lab/decidehub/pkg/utils/logging"
	"github.com/decide-lab/decidehub/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSetupProducts() *cli.Command {
	var repoCfg config.Repository
	var stripeCfg config.Stripe
	var plansCfg config.Plans

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, stripeCfg.Flags()...)
	flags = append(flags, plansCfg.Flags()...)

	return &cli.Command{
		Name:  "setup-products",
		Usage: "Provision billing products and prices with the payment provider",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			catalog, err := plansCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load plan catalog")
			}

			billingSvc, err := stripeCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Stripe client")
			}
			if billingSvc == nil {
				return goerr.New("stripe-secret-key is required for setup-products")
			}

			uc := usecase.New(repo,
				usecase.WithBilling(billingSvc),
				usecase.WithPlanCatalog(catalog),
			)

			products, err := uc.SetupProducts(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to setup products")
			}

			for _, p := range products {
				logger.Info("Provisioned product",
					"plan", p.PlanName,
					"product_id", p.StripeProductID,
					"price_id", p.StripePriceID)
			}

			return nil
		},
	}
}
