package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// ProfileRepository defines the interface for Profile data access. Profiles
// are owned by the external auth system; Put exists for bootstrapping and
// tests.
type ProfileRepository interface {
	// Put creates or replaces a profile
	Put(ctx context.Context, p *model.Profile) error

	// Get retrieves a profile by user ID
	Get(ctx context.Context, userID types.UserID) (*model.Profile, error)

	// GetByEmail retrieves a profile by email address. Returns nil, nil if
	// no profile matches.
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
}
