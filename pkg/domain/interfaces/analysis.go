package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// AnalysisRepository defines the interface for Analysis data access.
// Analyses are append-only.
type AnalysisRepository interface {
	// Create appends a new analysis with a generated ID
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)

	// Latest returns the most recent analysis for a case, or nil if none
	// exists.
	Latest(ctx context.Context, caseID types.CaseID) (*model.Analysis, error)

	// ListByCase retrieves all analyses for a case, newest first
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Analysis, error)
}
