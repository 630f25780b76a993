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

type simulationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSimulationRepository(client *firestore.Client) *simulationRepository {
	return &simulationRepository{client: client}
}

func (r *simulationRepository) collection() string {
	return collectionName(r.collectionPrefix, "simulations")
}

func (r *simulationRepository) Create(ctx context.Context, s *model.Simulation) (*model.Simulation, error) {
	created := *s
	created.ID = types.NewSimulationID()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create simulation", goerr.V("caseID", created.CaseID))
	}

	return &created, nil
}

func (r *simulationRepository) Latest(ctx context.Context, caseID types.CaseID) (*model.Simulation, error) {
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
		return nil, goerr.Wrap(err, "failed to query latest simulation", goerr.V("caseID", caseID))
	}

	var s model.Simulation
	if err := docSnap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode simulation")
	}

	return &s, nil
}

func (r *simulationRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.Simulation, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	simulations := make([]*model.Simulation, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate simulations", goerr.V("caseID", caseID))
		}

		var s model.Simulation
		if err := docSnap.DataTo(&s); err != nil {
			return nil, goerr.Wrap(err, "failed to decode simulation")
		}
		simulations = append(simulations, &s)
	}

	return simulations, nil
}

func (r *simulationRepository) CountByOwnerSince(ctx context.Context, ownerID types.UserID, since time.Time) (int64, error) {
	iter := r.client.Collection(r.collection()).
		Where("OwnerID", "==", ownerID.String()).
		Where("CreatedAt", ">=", since).
		Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count simulations", goerr.V("ownerID", ownerID))
		}
		count++
	}

	return count, nil
}
