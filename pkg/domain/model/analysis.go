package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// KeyArguments holds the arguments for and against a decision
type KeyArguments struct {
	For     []string `json:"for"`
	Against []string `json:"against"`
}

// DecisionPath is one candidate course of action with its implications
type DecisionPath struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Pros               []string `json:"pros"`
	Cons               []string `json:"cons"`
	ProbabilitySuccess float64  `json:"probability_success"`
}

// EffectsTradeoffs captures the short/long term effects of the decision
type EffectsTradeoffs struct {
	ShortTerm     []string `json:"short_term"`
	LongTerm      []string `json:"long_term"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

// Analysis is the structured output of one AI analysis call for a case.
// Analyses are append-only; the latest by CreatedAt is the current one.
type Analysis struct {
	ID                   types.AnalysisID  `json:"id"`
	CaseID               types.CaseID      `json:"case_id"`
	OwnerID              types.UserID      `json:"owner_id"`
	Summary              string            `json:"summary"`
	KeyArguments         KeyArguments      `json:"key_arguments"`
	DecisionPaths        []DecisionPath    `json:"decision_paths"`
	EffectsTradeoffs     EffectsTradeoffs  `json:"effects_tradeoffs"`
	ProbabilityReasoning string            `json:"probability_reasoning"`
	BlindSpots           []string          `json:"blind_spots"`
	RecommendedPath      string            `json:"recommended_path"`
	FollowUpQuestions    []string          `json:"follow_up_questions"`
	CreatedAt            time.Time         `json:"created_at"`
}
