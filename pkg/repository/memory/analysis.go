package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

type analysisRepository struct {
	mu       sync.RWMutex
	analyses map[types.AnalysisID]*model.Analysis
}

func newAnalysisRepository() *analysisRepository {
	return &analysisRepository{
		analyses: make(map[types.AnalysisID]*model.Analysis),
	}
}

// copyAnalysis creates a deep copy of an analysis
func copyAnalysis(a *model.Analysis) *model.Analysis {
	copied := *a
	copied.KeyArguments.For = copyStrings(a.KeyArguments.For)
	copied.KeyArguments.Against = copyStrings(a.KeyArguments.Against)
	copied.EffectsTradeoffs.ShortTerm = copyStrings(a.EffectsTradeoffs.ShortTerm)
	copied.EffectsTradeoffs.LongTerm = copyStrings(a.EffectsTradeoffs.LongTerm)
	copied.EffectsTradeoffs.Risks = copyStrings(a.EffectsTradeoffs.Risks)
	copied.EffectsTradeoffs.Opportunities = copyStrings(a.EffectsTradeoffs.Opportunities)
	copied.BlindSpots = copyStrings(a.BlindSpots)
	copied.FollowUpQuestions = copyStrings(a.FollowUpQuestions)

	if a.DecisionPaths != nil {
		paths := make([]model.DecisionPath, len(a.DecisionPaths))
		for i, p := range a.DecisionPaths {
			paths[i] = p
			paths[i].Pros = copyStrings(p.Pros)
			paths[i].Cons = copyStrings(p.Cons)
		}
		copied.DecisionPaths = paths
	}

	return &copied
}

func (r *analysisRepository) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAnalysis(a)
	created.ID = types.NewAnalysisID()
	created.CreatedAt = time.Now().UTC()

	r.analyses[created.ID] = created
	return copyAnalysis(created), nil
}

func (r *analysisRepository) Latest(ctx context.Context, caseID types.CaseID) (*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Analysis
	for _, a := range r.analyses {
		if a.CaseID != caseID {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}

	if latest == nil {
		return nil, nil
	}
	return copyAnalysis(latest), nil
}

func (r *analysisRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analyses := make([]*model.Analysis, 0)
	for _, a := range r.analyses {
		if a.CaseID == caseID {
			analyses = append(analyses, copyAnalysis(a))
		}
	}

	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})

	return analyses, nil
}
