package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type revisionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRevisionRepository(client *firestore.Client) *revisionRepository {
	return &revisionRepository{client: client}
}

func (r *revisionRepository) collection() string {
	return collectionName(r.collectionPrefix, "revisions")
}

func (r *revisionRepository) Create(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	created := *rev
	created.ID = types.NewRevisionID()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create revision", goerr.V("caseID", created.CaseID))
	}

	return &created, nil
}

func (r *revisionRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Revision, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	revisions := make([]*model.Revision, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate revisions", goerr.V("caseID", caseID))
		}

		var rev model.Revision
		if err := docSnap.DataTo(&rev); err != nil {
			return nil, goerr.Wrap(err, "failed to decode revision")
		}
		revisions = append(revisions, &rev)
	}

	return revisions, nil
}
