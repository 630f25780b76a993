package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// RevisionRepository defines the interface for Revision data access.
// Revisions are immutable once written.
type RevisionRepository interface {
	// Create appends a new revision with a generated ID
	Create(ctx context.Context, r *model.Revision) (*model.Revision, error)

	// ListByCase retrieves all revisions for a case, newest first
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Revision, error)
}
