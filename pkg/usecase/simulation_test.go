package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/repository/memory"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// iterations deliberately wrong so the forced reset is observable
const simulationPayload = `{
  "expected_value": {"impact_score": 7.5, "confidence": 0.8, "monetary": 250000},
  "best_case": {"description": "Rapid adoption in two quarters", "probability": 0.1, "impact": "high"},
  "worst_case": {"description": "Regulatory block on launch", "probability": 0.1, "impact": "severe"},
  "simulation_results": {"iterations": 1, "success_rate": 0.65, "average_outcome": "moderate gain", "variance": "medium"},
  "probability_data": [{"outcome": "success", "probability": 0.65, "impact_level": 7}]
}`

func TestSimulateRisk(t *testing.T) {
	t.Run("persists the simulation with a fixed iteration count", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		premium := newCannedLLM(simulationPayload)
		uc := usecase.New(repo, usecase.WithPremiumLLM(premium))

		sim, err := uc.SimulateRisk(ctx, c.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, sim.CaseID).Equal(c.ID)
		gt.Value(t, sim.OwnerID).Equal(c.OwnerID)
		gt.Value(t, sim.SimulationResults.Iterations).Equal(model.SimulationIterations)
		gt.Value(t, sim.SimulationResults.SuccessRate).Equal(0.65)
		gt.Value(t, sim.ExpectedValue.Monetary).NotNil()
		gt.Array(t, sim.ProbabilityData).Length(1)

		revisions, err := repo.Revision().ListByCase(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, revisions).Length(1).Required()
		gt.Value(t, revisions[0].Type).Equal(types.RevisionSimulationRun)
		gt.Value(t, revisions[0].Metadata["simulation_id"]).Equal(sim.ID.String())
	})

	t.Run("uses the premium backend regardless of tier", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-free")

		standard := newCannedLLM(simulationPayload)
		premium := newCannedLLM(simulationPayload)
		uc := usecase.New(repo,
			usecase.WithStandardLLM(standard),
			usecase.WithPremiumLLM(premium),
		)

		_, err := uc.SimulateRisk(ctx, c.ID)
		gt.NoError(t, err).Required()

		gt.Array(t, premium.prompts).Length(1)
		gt.Array(t, standard.prompts).Length(0)
	})

	t.Run("feeds the latest analysis summary into the prompt", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		_, err := repo.Analysis().Create(ctx, &model.Analysis{
			CaseID:  c.ID,
			OwnerID: c.OwnerID,
			Summary: "Prior analysis recommends the phased rollout",
		})
		gt.NoError(t, err).Required()

		premium := newCannedLLM(simulationPayload)
		uc := usecase.New(repo, usecase.WithPremiumLLM(premium))

		_, err = uc.SimulateRisk(ctx, c.ID)
		gt.NoError(t, err).Required()

		gt.Array(t, premium.prompts).Length(1).Required()
		gt.Value(t, strings.Contains(premium.prompts[0], "Prior analysis recommends the phased rollout")).Equal(true)
	})

	t.Run("missing required field is a parse failure and persists nothing", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		truncated := `{"expected_value": {"impact_score": 5, "confidence": 0.5}}`
		uc := usecase.New(repo, usecase.WithPremiumLLM(newCannedLLM(truncated)))

		_, err := uc.SimulateRisk(ctx, c.ID)
		gt.Error(t, err).Is(usecase.ErrParseFailure)

		simulations, err := repo.Simulation().ListByCase(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, simulations).Length(0)
	})

	t.Run("no premium client configured", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-1")

		uc := usecase.New(repo, usecase.WithStandardLLM(newCannedLLM(simulationPayload)))

		_, err := uc.SimulateRisk(ctx, c.ID)
		gt.Error(t, err).Is(usecase.ErrUpstreamFailure)
	})
}

func TestCanCreateSimulation(t *testing.T) {
	t.Run("free tier is limited per month", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		c := seedCase(t, repo, "user-free")

		uc := usecase.New(repo, usecase.WithPremiumLLM(newCannedLLM(simulationPayload)))

		quota, err := uc.CanCreateSimulation(ctx, "user-free")
		gt.NoError(t, err).Required()
		gt.Value(t, quota.Allowed).Equal(true)
		gt.Value(t, quota.Used).Equal(int64(0))
		gt.Value(t, quota.Limit).Equal(int64(usecase.FreeSimulationLimit))

		for range usecase.FreeSimulationLimit {
			_, err := uc.SimulateRisk(ctx, c.ID)
			gt.NoError(t, err).Required()
		}

		quota, err = uc.CanCreateSimulation(ctx, "user-free")
		gt.NoError(t, err).Required()
		gt.Value(t, quota.Allowed).Equal(false)
		gt.Value(t, quota.Used).Equal(int64(usecase.FreeSimulationLimit))
	})

	t.Run("premium tiers are unlimited", func(t *testing.T) {
		repo := memory.New()
		ctx := context.Background()
		gt.NoError(t, repo.Entitlement().SetRole(ctx, "user-premium", types.RolePremium)).Required()

		uc := usecase.New(repo)

		quota, err := uc.CanCreateSimulation(ctx, "user-premium")
		gt.NoError(t, err).Required()
		gt.Value(t, quota.Allowed).Equal(true)
		gt.Value(t, quota.Limit).Equal(int64(-1))
	})
}
