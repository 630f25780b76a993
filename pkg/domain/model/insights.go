package model

// Insights is the ephemeral cross-case summary returned by the insights
// aggregator. It is never persisted.
type Insights struct {
	OverallSummary  string   `json:"overall_summary"`
	KeyTrends       []string `json:"key_trends"`
	Recommendations []string `json:"recommendations"`
	RiskOverview    string   `json:"risk_overview"`
	Opportunities   []string `json:"opportunities"`
	BlindSpots      []string `json:"blind_spots"`
}
