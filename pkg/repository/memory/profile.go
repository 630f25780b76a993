package memory

import (
	"context"
	"sync"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[types.UserID]*model.Profile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[types.UserID]*model.Profile),
	}
}

func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	return &copied
}

func (r *profileRepository) Put(ctx context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.UserID == "" {
		return goerr.New("profile user ID is required")
	}

	r.profiles[p.UserID] = copyProfile(p)
	return nil
}

func (r *profileRepository) Get(ctx context.Context, userID types.UserID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.profiles[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
	}

	return copyProfile(p), nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.Email == email {
			return copyProfile(p), nil
		}
	}

	return nil, nil
}
