package usecase

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

const (
	analysisSystemPrompt   = "You are a strategic business decision analyst. Provide comprehensive, structured analysis in valid JSON format only."
	simulationSystemPrompt = "You are a risk simulation engine that provides detailed Monte Carlo-style analysis in valid JSON format only."
	insightsSystemPrompt   = "You are a strategic business insights analyst. Provide actionable insights in valid JSON format only."
)

// llmProfile is one row of the dispatch table: which client answers and
// under which system prompt.
type llmProfile struct {
	client gollem.LLMClient
	system string
}

// analysisProfile selects the analysis backend by subscription tier. Free
// users get the standard client, paying users the premium one.
func (uc *UseCases) analysisProfile(role types.Role) (llmProfile, error) {
	table := map[types.Role]llmProfile{
		types.RoleFree:    {client: uc.standardLLM, system: analysisSystemPrompt},
		types.RolePro:     {client: uc.premiumLLM, system: analysisSystemPrompt},
		types.RolePremium: {client: uc.premiumLLM, system: analysisSystemPrompt},
	}

	profile, ok := table[role.Normalize()]
	if !ok || profile.client == nil {
		return llmProfile{}, goerr.Wrap(ErrUpstreamFailure, "no LLM client configured for role", goerr.V("role", role))
	}
	return profile, nil
}

// simulationProfile always uses the premium client regardless of tier
func (uc *UseCases) simulationProfile() (llmProfile, error) {
	if uc.premiumLLM == nil {
		return llmProfile{}, goerr.Wrap(ErrUpstreamFailure, "no LLM client configured for simulation")
	}
	return llmProfile{client: uc.premiumLLM, system: simulationSystemPrompt}, nil
}

func (uc *UseCases) insightsProfile() (llmProfile, error) {
	if uc.premiumLLM == nil {
		return llmProfile{}, goerr.Wrap(ErrUpstreamFailure, "no LLM client configured for insights")
	}
	return llmProfile{client: uc.premiumLLM, system: insightsSystemPrompt}, nil
}

// generateJSON runs one prompt through the given profile and returns the
// raw JSON payload with any markdown code fence removed. Upstream failures
// are classified into the rate-limit / quota / generic taxonomy.
func generateJSON(ctx context.Context, profile llmProfile, prompt string, schema *gollem.Parameter) ([]byte, error) {
	opts := []gollem.SessionOption{
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(profile.system),
	}
	if schema != nil {
		opts = append(opts, gollem.WithSessionResponseSchema(schema))
	}

	session, err := profile.client.NewSession(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(classifyUpstreamError(err), "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(classifyUpstreamError(err), "LLM generation failed")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.Wrap(ErrUpstreamFailure, "LLM returned empty response")
	}

	return stripCodeFence([]byte(resp.Texts[0])), nil
}

// classifyUpstreamError maps a provider error onto the upstream taxonomy.
// Providers surface HTTP status through error strings, so classification is
// textual.
func classifyUpstreamError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource exhausted"):
		return ErrUpstreamRateLimited
	case strings.Contains(msg, "402") || strings.Contains(msg, "quota") || strings.Contains(msg, "credit") || strings.Contains(msg, "payment required"):
		return ErrUpstreamQuotaExhausted
	default:
		return ErrUpstreamFailure
	}
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)\\n\\s*```")

// stripCodeFence extracts the JSON body from a markdown code fence if the
// model wrapped its answer in one. Unfenced input passes through unchanged.
func stripCodeFence(raw []byte) []byte {
	if m := codeFenceRe.FindSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// decodeStrict unmarshals payload into out after verifying every required
// top-level key is present. A missing key is a parse failure, not a silent
// zero value.
func decodeStrict(payload []byte, required []string, out any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return goerr.Wrap(ErrParseFailure, "response is not a JSON object", goerr.V("response", string(payload)))
	}

	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return goerr.Wrap(ErrParseFailure, "response is missing required field",
				goerr.V("field", key),
				goerr.V("response", string(payload)),
			)
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return goerr.Wrap(ErrParseFailure, "failed to decode response", goerr.V("response", string(payload)))
	}

	return nil
}
