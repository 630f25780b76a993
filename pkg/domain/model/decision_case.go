package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// DecisionCase represents a user-authored business decision under evaluation.
// It is the root entity that analyses, simulations, revisions, and team
// memberships attach to.
type DecisionCase struct {
	ID             types.CaseID     `json:"id"`
	OwnerID        types.UserID     `json:"owner_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Objectives     string           `json:"objectives"`
	Constraints    string           `json:"constraints"`
	Context        string           `json:"context"`
	Risks          string           `json:"risks"`
	AdditionalText string           `json:"additional_text"`
	Status         types.CaseStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
