package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() string {
	return collectionName(r.collectionPrefix, "profiles")
}

func (r *profileRepository) Put(ctx context.Context, p *model.Profile) error {
	if p.UserID == "" {
		return goerr.New("profile user ID is required")
	}

	_, err := r.client.Collection(r.collection()).Doc(p.UserID.String()).Set(ctx, p)
	if err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("userID", p.UserID))
	}

	return nil
}

func (r *profileRepository) Get(ctx context.Context, userID types.UserID) (*model.Profile, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("userID", userID))
	}

	var p model.Profile
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("userID", userID))
	}

	return &p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	iter := r.client.Collection(r.collection()).
		Where("Email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query profile by email")
	}

	var p model.Profile
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile")
	}

	return &p, nil
}
