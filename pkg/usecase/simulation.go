package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/simulate.md
var simulatePromptTmpl string

var simulatePrompt = template.Must(template.New("simulate").Parse(simulatePromptTmpl))

// FreeSimulationLimit is the number of simulations a free user may run per
// calendar month (UTC).
const FreeSimulationLimit = 3

var simulationRequiredFields = []string{
	"expected_value",
	"best_case",
	"worst_case",
	"simulation_results",
	"probability_data",
}

func simulationSchema() *gollem.Parameter {
	scenario := func(desc string) *gollem.Parameter {
		return &gollem.Parameter{
			Type:        gollem.TypeObject,
			Description: desc,
			Properties: map[string]*gollem.Parameter{
				"description": {Type: gollem.TypeString},
				"probability": {Type: gollem.TypeNumber, Description: "0-1"},
				"impact":      {Type: gollem.TypeString},
			},
		}
	}

	return &gollem.Parameter{
		Type:        gollem.TypeObject,
		Title:       "Risk Simulation",
		Description: "100-iteration Monte Carlo-style risk simulation",
		Properties: map[string]*gollem.Parameter{
			"expected_value": {
				Type:     gollem.TypeObject,
				Required: true,
				Properties: map[string]*gollem.Parameter{
					"monetary":     {Type: gollem.TypeNumber, Description: "Monetary expected value, or null"},
					"impact_score": {Type: gollem.TypeNumber, Description: "1-10"},
					"confidence":   {Type: gollem.TypeNumber, Description: "0-1"},
				},
			},
			"best_case":  scenario("Best-case scenario (90th percentile)"),
			"worst_case": scenario("Worst-case scenario (10th percentile)"),
			"simulation_results": {
				Type:     gollem.TypeObject,
				Required: true,
				Properties: map[string]*gollem.Parameter{
					"iterations":      {Type: gollem.TypeInteger, Description: "Always 100"},
					"success_rate":    {Type: gollem.TypeNumber, Description: "0-1"},
					"average_outcome": {Type: gollem.TypeString},
					"variance":        {Type: gollem.TypeString},
				},
			},
			"probability_data": {
				Type:        gollem.TypeArray,
				Description: "Probability distribution data for charting",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"outcome":      {Type: gollem.TypeString},
						"probability":  {Type: gollem.TypeNumber, Description: "0-1"},
						"impact_level": {Type: gollem.TypeNumber, Description: "1-10"},
					},
				},
			},
		},
	}
}

type simulatePromptData struct {
	Title           string
	Description     string
	Risks           string
	AnalysisSummary string
}

// SimulateRisk runs one risk simulation for a case and persists the result
// with an audit revision. The premium backend serves every tier. The latest
// analysis summary, when present, is fed into the prompt.
func (uc *UseCases) SimulateRisk(ctx context.Context, caseID types.CaseID) (*model.Simulation, error) {
	c, err := uc.repo.Case().Get(ctx, caseID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", caseID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", caseID))
	}

	profile, err := uc.simulationProfile()
	if err != nil {
		return nil, err
	}

	data := simulatePromptData{
		Title:       c.Title,
		Description: c.Description,
		Risks:       c.Risks,
	}
	if latest, err := uc.repo.Analysis().Latest(ctx, caseID); err == nil && latest != nil {
		data.AnalysisSummary = latest.Summary
	}

	var prompt bytes.Buffer
	if err := simulatePrompt.Execute(&prompt, data); err != nil {
		return nil, goerr.Wrap(err, "failed to render simulation prompt")
	}

	payload, err := generateJSON(ctx, profile, prompt.String(), simulationSchema())
	if err != nil {
		return nil, err
	}

	var parsed model.Simulation
	if err := decodeStrict(payload, simulationRequiredFields, &parsed); err != nil {
		return nil, err
	}

	parsed.ID = ""
	parsed.CaseID = caseID
	parsed.OwnerID = c.OwnerID
	parsed.SimulationResults.Iterations = model.SimulationIterations

	simulation, err := uc.repo.Simulation().Create(ctx, &parsed)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store simulation", goerr.V("caseID", caseID))
	}

	if _, err := uc.repo.Revision().Create(ctx, &model.Revision{
		CaseID:  caseID,
		OwnerID: c.OwnerID,
		Type:    types.RevisionSimulationRun,
		Content: "Risk simulation completed",
		Metadata: map[string]any{
			"simulation_id": simulation.ID.String(),
		},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record simulation revision", goerr.V("caseID", caseID))
	}

	return simulation, nil
}

// SimulationQuota reports a user's standing against the monthly free-tier
// simulation limit.
type SimulationQuota struct {
	Allowed bool  `json:"allowed"`
	Used    int64 `json:"used"`
	Limit   int64 `json:"limit"`
}

// CanCreateSimulation checks the monthly quota for a user. Free users are
// limited per calendar month (UTC); pro and premium are unlimited.
func (uc *UseCases) CanCreateSimulation(ctx context.Context, userID types.UserID) (*SimulationQuota, error) {
	role, err := uc.repo.Entitlement().GetRole(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve role", goerr.V("userID", userID))
	}

	if role.IsPremiumTier() {
		return &SimulationQuota{Allowed: true, Limit: -1}, nil
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	used, err := uc.repo.Simulation().CountByOwnerSince(ctx, userID, monthStart)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count simulations", goerr.V("userID", userID))
	}

	return &SimulationQuota{
		Allowed: used < FreeSimulationLimit,
		Used:    used,
		Limit:   FreeSimulationLimit,
	}, nil
}
