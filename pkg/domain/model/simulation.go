package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// SimulationIterations is the fixed iteration count reported by the risk
// simulation. The upstream model is instructed to simulate exactly this many
// runs.
const SimulationIterations = 100

// ExpectedValue is the simulated expected outcome of a decision
type ExpectedValue struct {
	ImpactScore float64  `json:"impact_score"`
	Confidence  float64  `json:"confidence"`
	Monetary    *float64 `json:"monetary,omitempty"`
}

// Scenario describes one tail of the simulated outcome distribution
type Scenario struct {
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
}

// SimulationResults summarizes the simulated run
type SimulationResults struct {
	Iterations     int     `json:"iterations"`
	SuccessRate    float64 `json:"success_rate"`
	AverageOutcome string  `json:"average_outcome"`
	Variance       string  `json:"variance"`
}

// ProbabilityPoint is one entry of the outcome distribution used for charting
type ProbabilityPoint struct {
	Outcome     string  `json:"outcome"`
	Probability float64 `json:"probability"`
	ImpactLevel float64 `json:"impact_level"`
}

// Simulation is the structured output of one risk simulation call for a
// case. Simulations are append-only; the latest by CreatedAt is the current
// one.
type Simulation struct {
	ID                types.SimulationID `json:"id"`
	CaseID            types.CaseID       `json:"case_id"`
	OwnerID           types.UserID       `json:"owner_id"`
	ExpectedValue     ExpectedValue      `json:"expected_value"`
	BestCase          Scenario           `json:"best_case"`
	WorstCase         Scenario           `json:"worst_case"`
	SimulationResults SimulationResults  `json:"simulation_results"`
	ProbabilityData   []ProbabilityPoint `json:"probability_data"`
	CreatedAt         time.Time          `json:"created_at"`
}
