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

type analysisRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAnalysisRepository(client *firestore.Client) *analysisRepository {
	return &analysisRepository{client: client}
}

func (r *analysisRepository) collection() string {
	return collectionName(r.collectionPrefix, "analyses")
}

func (r *analysisRepository) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	created := *a
	created.ID = types.NewAnalysisID()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create analysis", goerr.V("caseID", created.CaseID))
	}

	return &created, nil
}

func (r *analysisRepository) Latest(ctx context.Context, caseID types.CaseID) (*model.Analysis, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query latest analysis", goerr.V("caseID", caseID))
	}

	var a model.Analysis
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode analysis")
	}

	return &a, nil
}

func (r *analysisRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Analysis, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	analyses := make([]*model.Analysis, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate analyses", goerr.V("caseID", caseID))
		}

		var a model.Analysis
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode analysis")
		}
		analyses = append(analyses, &a)
	}

	return analyses, nil
}
