package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/decide-lab/decidehub/pkg/cli/config"
	httpctrl "github.com/decide-lab/decidehub/pkg/controller/http"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/decide-lab/decidehub/pkg/utils/logging"
	"github.com/decide-lab/decidehub/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var openaiCfg config.OpenAI
	var stripeCfg config.Stripe
	var plansCfg config.Plans

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DECIDEHUB_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)
	flags = append(flags, stripeCfg.Flags()...)
	flags = append(flags, plansCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
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

			ucOpts := []usecase.Option{
				usecase.WithPlanCatalog(catalog),
			}

			premiumLLM, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if premiumLLM != nil {
				ucOpts = append(ucOpts, usecase.WithPremiumLLM(premiumLLM))
				logger.Info("Gemini client enabled", "config", geminiCfg.LogAttrs())
			} else {
				logger.Info("Gemini not configured, premium analysis and simulation will be unavailable")
			}

			standardLLM, err := openaiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure OpenAI client")
			}
			if standardLLM != nil {
				ucOpts = append(ucOpts, usecase.WithStandardLLM(standardLLM))
				logger.Info("OpenAI client enabled")
			} else {
				logger.Info("OpenAI not configured, free-tier analysis will be unavailable")
			}

			billingSvc, err := stripeCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Stripe client")
			}
			if billingSvc != nil {
				ucOpts = append(ucOpts, usecase.WithBilling(billingSvc))
				logger.Info("Stripe billing enabled")
			} else {
				logger.Info("Stripe not configured, checkout and webhooks will be unavailable")
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
