package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{client: client}
}

func (r *caseRepository) collection() string {
	return collectionName(r.collectionPrefix, "decision_cases")
}

func (r *caseRepository) Create(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error) {
	now := time.Now().UTC()
	created := *c
	created.ID = types.NewCaseID()
	created.Status = created.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.DecisionCase, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("id", id))
	}

	var c model.DecisionCase
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V("id", id))
	}

	return &c, nil
}

func (r *caseRepository) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.DecisionCase, error) {
	iter := r.client.Collection(r.collection()).
		Where("OwnerID", "==", ownerID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	cases := make([]*model.DecisionCase, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases", goerr.V("ownerID", ownerID))
		}

		var c model.DecisionCase
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case")
		}
		cases = append(cases, &c)
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.DecisionCase) (*model.DecisionCase, error) {
	existing, err := r.Get(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	updated := *c
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	_, err = r.client.Collection(r.collection()).Doc(updated.ID.String()).Set(ctx, &updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V("id", updated.ID))
	}

	return &updated, nil
}
