package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// CaseRepository defines the interface for DecisionCase data access
type CaseRepository interface {
	// Create creates a new case with a generated ID
	Create(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id types.CaseID) (*model.DecisionCase, error)

	// ListByOwner retrieves all cases owned by a user, newest first
	ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.DecisionCase, error)

	// Update updates an existing case
	Update(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error)
}
