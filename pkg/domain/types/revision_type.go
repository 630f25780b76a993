package types

import "fmt"

// RevisionType represents the kind of audit event a revision records
type RevisionType string

const (
	RevisionCaseCreated       RevisionType = "case_created"
	RevisionStatusChanged     RevisionType = "status_changed"
	RevisionAnalysisGenerated RevisionType = "analysis_generated"
	RevisionSimulationRun     RevisionType = "simulation_run"
)

// AllRevisionTypes returns all valid revision types
func AllRevisionTypes() []RevisionType {
	return []RevisionType{
		RevisionCaseCreated,
		RevisionStatusChanged,
		RevisionAnalysisGenerated,
		RevisionSimulationRun,
	}
}

// IsValid checks if the revision type is valid
func (t RevisionType) IsValid() bool {
	switch t {
	case RevisionCaseCreated,
		RevisionStatusChanged,
		RevisionAnalysisGenerated,
		RevisionSimulationRun:
		return true
	default:
		return false
	}
}

// String returns the string representation of the revision type
func (t RevisionType) String() string {
	return string(t)
}

// ParseRevisionType parses a string into a RevisionType
func ParseRevisionType(s string) (RevisionType, error) {
	rt := RevisionType(s)
	if !rt.IsValid() {
		return "", fmt.Errorf("invalid revision type: %s", s)
	}
	return rt, nil
}
