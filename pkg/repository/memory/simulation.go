package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

type simulationRepository struct {
	mu          sync.RWMutex
	simulations map[types.SimulationID]*model.Simulation
}

func newSimulationRepository() *simulationRepository {
	return &simulationRepository{
		simulations: make(map[types.SimulationID]*model.Simulation),
	}
}

// copySimulation creates a deep copy of a simulation
func copySimulation(s *model.Simulation) *model.Simulation {
	copied := *s
	if s.ExpectedValue.Monetary != nil {
		m := *s.ExpectedValue.Monetary
		copied.ExpectedValue.Monetary = &m
	}
	if s.ProbabilityData != nil {
		points := make([]model.ProbabilityPoint, len(s.ProbabilityData))
		copy(points, s.ProbabilityData)
		copied.ProbabilityData = points
	}
	return &copied
}

func (r *simulationRepository) Create(ctx context.Context, s *model.Simulation) (*model.Simulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copySimulation(s)
	created.ID = types.NewSimulationID()
	created.CreatedAt = time.Now().UTC()

	r.simulations[created.ID] = created
	return copySimulation(created), nil
}

func (r *simulationRepository) Latest(ctx context.Context, caseID types.CaseID) (*model.Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Simulation
	for _, s := range r.simulations {
		if s.CaseID != caseID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}

	if latest == nil {
		return nil, nil
	}
	return copySimulation(latest), nil
}

func (r *simulationRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	simulations := make([]*model.Simulation, 0)
	for _, s := range r.simulations {
		if s.CaseID == caseID {
			simulations = append(simulations, copySimulation(s))
		}
	}

	sort.Slice(simulations, func(i, j int) bool {
		return simulations[i].CreatedAt.After(simulations[j].CreatedAt)
	})

	return simulations, nil
}

func (r *simulationRepository) CountByOwnerSince(ctx context.Context, ownerID types.UserID, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, s := range r.simulations {
		if s.OwnerID == ownerID && !s.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}
