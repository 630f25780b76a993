package interfaces

import (
	"context"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// SimulationRepository defines the interface for Simulation data access.
// Simulations are append-only.
type SimulationRepository interface {
	// Create appends a new simulation with a generated ID
	Create(ctx context.Context, s *model.Simulation) (*model.Simulation, error)

	// Latest returns the most recent simulation for a case, or nil if none
	// exists.
	Latest(ctx context.Context, caseID types.CaseID) (*model.Simulation, error)

	// ListByCase retrieves all simulations for a case, newest first
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Simulation, error)

	// CountByOwnerSince counts simulations created by a user at or after
	// the given time. Used for monthly quota checks.
	CountByOwnerSince(ctx context.Context, ownerID types.UserID, since time.Time) (int64, error)
}
