package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"text/template"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/insights.md
var insightsPromptTmpl string

var insightsPrompt = template.Must(template.New("insights").Parse(insightsPromptTmpl))

var insightsRequiredFields = []string{
	"overall_summary",
	"key_trends",
	"recommendations",
	"risk_overview",
	"opportunities",
	"blind_spots",
}

func insightsSchema() *gollem.Parameter {
	stringArray := func(desc string) *gollem.Parameter {
		return &gollem.Parameter{
			Type:        gollem.TypeArray,
			Description: desc,
			Items:       &gollem.Parameter{Type: gollem.TypeString},
		}
	}

	return &gollem.Parameter{
		Type:        gollem.TypeObject,
		Title:       "Business Insights",
		Description: "Strategic insights across all of a user's decisions",
		Properties: map[string]*gollem.Parameter{
			"overall_summary": {Type: gollem.TypeString, Required: true},
			"key_trends":      stringArray("Key trends and patterns"),
			"recommendations": stringArray("Strategic recommendations"),
			"risk_overview":   {Type: gollem.TypeString, Required: true},
			"opportunities":   stringArray("Opportunities identified"),
			"blind_spots":     stringArray("Potential blind spots"),
		},
	}
}

// caseDigest is the per-case summary fed into the insights prompt
type caseDigest struct {
	Title         string `json:"title"`
	Status        string `json:"status"`
	Risks         string `json:"risks"`
	HasAnalysis   bool   `json:"has_analysis"`
	HasSimulation bool   `json:"has_simulation"`
}

type insightsPromptData struct {
	TotalDecisions int
	DataSummary    string
}

func emptyInsights() *model.Insights {
	return &model.Insights{
		OverallSummary:  "No decisions yet. Create your first decision case to get started!",
		KeyTrends:       []string{},
		Recommendations: []string{},
		RiskOverview:    "No data available",
	}
}

func degradedInsights() *model.Insights {
	return &model.Insights{
		OverallSummary:  "Unable to generate insights due to AI service limits. Please try again later.",
		KeyTrends:       []string{},
		Recommendations: []string{},
		RiskOverview:    "Service temporarily unavailable",
	}
}

// GenerateInsights summarizes all of a user's decisions into one ephemeral
// insights payload. Zero cases short-circuits without an LLM call, and
// upstream rate/quota limits degrade to a canned payload instead of failing.
func (uc *UseCases) GenerateInsights(ctx context.Context, userID types.UserID) (*model.Insights, error) {
	cases, err := uc.repo.Case().ListByOwner(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases", goerr.V("userID", userID))
	}

	if len(cases) == 0 {
		return emptyInsights(), nil
	}

	profile, err := uc.insightsProfile()
	if err != nil {
		return nil, err
	}

	digests := make([]caseDigest, 0, len(cases))
	for _, c := range cases {
		d := caseDigest{
			Title:  c.Title,
			Status: c.Status.String(),
			Risks:  c.Risks,
		}
		if latest, err := uc.repo.Analysis().Latest(ctx, c.ID); err == nil && latest != nil {
			d.HasAnalysis = true
		}
		if latest, err := uc.repo.Simulation().Latest(ctx, c.ID); err == nil && latest != nil {
			d.HasSimulation = true
		}
		digests = append(digests, d)
	}

	summary, err := json.MarshalIndent(digests, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode case digests")
	}

	var prompt bytes.Buffer
	if err := insightsPrompt.Execute(&prompt, insightsPromptData{
		TotalDecisions: len(cases),
		DataSummary:    string(summary),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to render insights prompt")
	}

	payload, err := generateJSON(ctx, profile, prompt.String(), insightsSchema())
	if err != nil {
		if errors.Is(err, ErrUpstreamRateLimited) || errors.Is(err, ErrUpstreamQuotaExhausted) {
			return degradedInsights(), nil
		}
		return nil, err
	}

	var insights model.Insights
	if err := decodeStrict(payload, insightsRequiredFields, &insights); err != nil {
		return nil, err
	}

	return &insights, nil
}
