package config

import (
	"os"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Plans holds configuration for the billing plan catalog
type Plans struct {
	path string
}

// Flags returns CLI flags for plan catalog configuration
func (p *Plans) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "plan-catalog",
			Usage:       "Path to a TOML plan catalog (defaults to the built-in catalog)",
			Sources:     cli.EnvVars("DECIDEHUB_PLAN_CATALOG"),
			Destination: &p.path,
		},
	}
}

// Configure loads the plan catalog. Without a path the built-in catalog is
// used.
func (p *Plans) Configure() (*model.PlanCatalog, error) {
	if p.path == "" {
		return model.DefaultPlanCatalog(), nil
	}
	return LoadPlanCatalog(p.path)
}

// LoadPlanCatalog reads and validates a TOML plan catalog file
func LoadPlanCatalog(path string) (*model.PlanCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read plan catalog", goerr.V("path", path))
	}

	var catalog model.PlanCatalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse plan catalog", goerr.V("path", path))
	}

	if len(catalog.Plans) == 0 {
		return nil, goerr.New("plan catalog has no plans", goerr.V("path", path))
	}
	for _, spec := range catalog.Plans {
		if !spec.Plan.IsValid() {
			return nil, goerr.New("unknown plan in catalog", goerr.V("plan", spec.Plan))
		}
		if spec.Amount <= 0 {
			return nil, goerr.New("plan amount must be positive", goerr.V("plan", spec.Plan))
		}
	}

	return &catalog, nil
}
