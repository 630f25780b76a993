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

type entitlementRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEntitlementRepository(client *firestore.Client) *entitlementRepository {
	return &entitlementRepository{client: client}
}

func (r *entitlementRepository) collection() string {
	return collectionName(r.collectionPrefix, "entitlements")
}

func (r *entitlementRepository) GetRole(ctx context.Context, userID types.UserID) (types.Role, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.RoleFree, nil
		}
		return "", goerr.Wrap(err, "failed to get entitlement", goerr.V("userID", userID))
	}

	var ent model.Entitlement
	if err := docSnap.DataTo(&ent); err != nil {
		return "", goerr.Wrap(err, "failed to decode entitlement", goerr.V("userID", userID))
	}

	return ent.Role.Normalize(), nil
}

func (r *entitlementRepository) SetRole(ctx context.Context, userID types.UserID, role types.Role) error {
	ent := &model.Entitlement{
		UserID:    userID,
		Role:      role.Normalize(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := r.client.Collection(r.collection()).Doc(userID.String()).Set(ctx, ent)
	if err != nil {
		return goerr.Wrap(err, "failed to set entitlement",
			goerr.V("userID", userID),
			goerr.V("role", role),
		)
	}

	return nil
}

type subscriptionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSubscriptionRepository(client *firestore.Client) *subscriptionRepository {
	return &subscriptionRepository{client: client}
}

func (r *subscriptionRepository) collection() string {
	return collectionName(r.collectionPrefix, "subscriptions")
}

func (r *subscriptionRepository) Get(ctx context.Context, userID types.UserID) (*model.Subscription, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get subscription", goerr.V("userID", userID))
	}

	var sub model.Subscription
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, goerr.Wrap(err, "failed to decode subscription", goerr.V("userID", userID))
	}

	return &sub, nil
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	stored := *sub
	stored.UpdatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(stored.UserID.String()).Set(ctx, &stored)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert subscription", goerr.V("userID", stored.UserID))
	}

	return nil
}

func (r *subscriptionRepository) FindByCustomerID(ctx context.Context, customerID string) (*model.Subscription, error) {
	iter := r.client.Collection(r.collection()).
		Where("StripeCustomerID", "==", customerID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query subscription by customer", goerr.V("customerID", customerID))
	}

	var sub model.Subscription
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, goerr.Wrap(err, "failed to decode subscription")
	}

	return &sub, nil
}
