package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/analyze.md
var analyzePromptTmpl string

var analyzePrompt = template.Must(template.New("analyze").Parse(analyzePromptTmpl))

var analysisRequiredFields = []string{
	"summary",
	"key_arguments",
	"decision_paths",
	"effects_tradeoffs",
	"probability_reasoning",
	"blind_spots",
	"recommended_path",
	"follow_up_questions",
}

func analysisSchema() *gollem.Parameter {
	stringArray := func(desc string) *gollem.Parameter {
		return &gollem.Parameter{
			Type:        gollem.TypeArray,
			Description: desc,
			Items:       &gollem.Parameter{Type: gollem.TypeString},
		}
	}

	return &gollem.Parameter{
		Type:        gollem.TypeObject,
		Title:       "Decision Analysis",
		Description: "Structured analysis of a business decision",
		Properties: map[string]*gollem.Parameter{
			"summary": {
				Type:        gollem.TypeString,
				Description: "A clear summary of the decision",
				Required:    true,
			},
			"key_arguments": {
				Type:     gollem.TypeObject,
				Required: true,
				Properties: map[string]*gollem.Parameter{
					"for":     stringArray("Arguments in favor"),
					"against": stringArray("Arguments against"),
				},
			},
			"decision_paths": {
				Type:        gollem.TypeArray,
				Description: "3-5 distinct decision paths with their implications",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"name":                {Type: gollem.TypeString},
						"description":         {Type: gollem.TypeString},
						"pros":                stringArray("Advantages of this path"),
						"cons":                stringArray("Disadvantages of this path"),
						"probability_success": {Type: gollem.TypeNumber},
					},
				},
			},
			"effects_tradeoffs": {
				Type:     gollem.TypeObject,
				Required: true,
				Properties: map[string]*gollem.Parameter{
					"short_term":    stringArray("Short-term effects"),
					"long_term":     stringArray("Long-term effects"),
					"risks":         stringArray("Risks across paths"),
					"opportunities": stringArray("Opportunities across paths"),
				},
			},
			"probability_reasoning": {
				Type:        gollem.TypeString,
				Description: "Probability-based reasoning behind the estimates",
				Required:    true,
			},
			"blind_spots":         stringArray("Potential blind spots"),
			"recommended_path":    {Type: gollem.TypeString, Required: true},
			"follow_up_questions": stringArray("Follow-up questions to consider"),
		},
	}
}

// AnalyzeDecision runs one AI analysis for a case and persists the result
// with an audit revision. Nothing is written when any step fails.
func (uc *UseCases) AnalyzeDecision(ctx context.Context, caseID types.CaseID) (*model.Analysis, error) {
	c, err := uc.repo.Case().Get(ctx, caseID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", caseID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", caseID))
	}

	role, err := uc.repo.Entitlement().GetRole(ctx, c.OwnerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve owner role", goerr.V("ownerID", c.OwnerID))
	}

	profile, err := uc.analysisProfile(role)
	if err != nil {
		return nil, err
	}

	var prompt bytes.Buffer
	if err := analyzePrompt.Execute(&prompt, c); err != nil {
		return nil, goerr.Wrap(err, "failed to render analysis prompt")
	}

	payload, err := generateJSON(ctx, profile, prompt.String(), analysisSchema())
	if err != nil {
		return nil, err
	}

	var parsed model.Analysis
	if err := decodeStrict(payload, analysisRequiredFields, &parsed); err != nil {
		return nil, err
	}

	parsed.ID = ""
	parsed.CaseID = caseID
	parsed.OwnerID = c.OwnerID

	analysis, err := uc.repo.Analysis().Create(ctx, &parsed)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store analysis", goerr.V("caseID", caseID))
	}

	if _, err := uc.repo.Revision().Create(ctx, &model.Revision{
		CaseID:  caseID,
		OwnerID: c.OwnerID,
		Type:    types.RevisionAnalysisGenerated,
		Content: "AI analysis completed",
		Metadata: map[string]any{
			"analysis_id": analysis.ID.String(),
		},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record analysis revision", goerr.V("caseID", caseID))
	}

	c.Status = types.CaseStatusAnalyzed
	if _, err := uc.repo.Case().Update(ctx, c); err != nil {
		logging.From(ctx).Warn("failed to mark case analyzed",
			"caseID", caseID,
			"error", err.Error(),
		)
	}

	return analysis, nil
}

// ListAnalyses returns all analyses of a case, newest first
func (uc *UseCases) ListAnalyses(ctx context.Context, caseID types.CaseID) ([]*model.Analysis, error) {
	analyses, err := uc.repo.Analysis().ListByCase(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list analyses", goerr.V("caseID", caseID))
	}
	return analyses, nil
}
