package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type caseRepository struct {
	mu    sync.RWMutex
	cases map[types.CaseID]*model.DecisionCase
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases: make(map[types.CaseID]*model.DecisionCase),
	}
}

// copyCase creates a deep copy of a case
func copyCase(c *model.DecisionCase) *model.DecisionCase {
	copied := *c
	return &copied
}

func (r *caseRepository) Create(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyCase(c)
	created.ID = types.NewCaseID()
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.cases[created.ID] = created
	return copyCase(created), nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.DecisionCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	return copyCase(c), nil
}

func (r *caseRepository) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.DecisionCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.DecisionCase, 0)
	for _, c := range r.cases {
		if c.OwnerID == ownerID {
			cases = append(cases, copyCase(c))
		}
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cases[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	updated := copyCase(c)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.cases[updated.ID] = updated
	return copyCase(updated), nil
}
