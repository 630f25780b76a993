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

type productRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProductRepository(client *firestore.Client) *productRepository {
	return &productRepository{client: client}
}

func (r *productRepository) collection() string {
	return collectionName(r.collectionPrefix, "products")
}

func (r *productRepository) GetByPlan(ctx context.Context, plan types.Plan) (*model.Product, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(plan.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get product", goerr.V("plan", plan))
	}

	var p model.Product
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode product", goerr.V("plan", plan))
	}

	return &p, nil
}

func (r *productRepository) Upsert(ctx context.Context, p *model.Product) error {
	if !p.PlanName.IsValid() {
		return goerr.New("invalid plan name", goerr.V("plan", p.PlanName))
	}

	stored := *p
	stored.UpdatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(stored.PlanName.String()).Set(ctx, &stored)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert product", goerr.V("plan", stored.PlanName))
	}

	return nil
}

func (r *productRepository) List(ctx context.Context) ([]*model.Product, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	products := make([]*model.Product, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate products")
		}

		var p model.Product
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode product")
		}
		products = append(products, &p)
	}

	return products, nil
}
