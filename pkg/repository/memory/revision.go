package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

type revisionRepository struct {
	mu        sync.RWMutex
	revisions map[types.RevisionID]*model.Revision
}

func newRevisionRepository() *revisionRepository {
	return &revisionRepository{
		revisions: make(map[types.RevisionID]*model.Revision),
	}
}

func copyRevision(rev *model.Revision) *model.Revision {
	copied := *rev
	copied.Metadata = copyMetadata(rev.Metadata)
	return &copied
}

func (r *revisionRepository) Create(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRevision(rev)
	created.ID = types.NewRevisionID()
	created.CreatedAt = time.Now().UTC()

	r.revisions[created.ID] = created
	return copyRevision(created), nil
}

func (r *revisionRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	revisions := make([]*model.Revision, 0)
	for _, rev := range r.revisions {
		if rev.CaseID == caseID {
			revisions = append(revisions, copyRevision(rev))
		}
	}

	sort.Slice(revisions, func(i, j int) bool {
		return revisions[i].CreatedAt.After(revisions[j].CreatedAt)
	})

	return revisions, nil
}
