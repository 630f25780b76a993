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

type invitationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInvitationRepository(client *firestore.Client) *invitationRepository {
	return &invitationRepository{client: client}
}

func (r *invitationRepository) collection() string {
	return collectionName(r.collectionPrefix, "team_invitations")
}

func (r *invitationRepository) Create(ctx context.Context, inv *model.TeamInvitation) (*model.TeamInvitation, error) {
	created := *inv
	created.ID = types.NewInvitationID()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create invitation", goerr.V("caseID", created.CaseID))
	}

	return &created, nil
}

func (r *invitationRepository) Get(ctx context.Context, id types.InvitationID) (*model.TeamInvitation, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "invitation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get invitation", goerr.V("id", id))
	}

	var inv model.TeamInvitation
	if err := docSnap.DataTo(&inv); err != nil {
		return nil, goerr.Wrap(err, "failed to decode invitation", goerr.V("id", id))
	}

	return &inv, nil
}

func (r *invitationRepository) Update(ctx context.Context, inv *model.TeamInvitation) (*model.TeamInvitation, error) {
	existing, err := r.Get(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	updated := *inv
	updated.CreatedAt = existing.CreatedAt

	_, err = r.client.Collection(r.collection()).Doc(updated.ID.String()).Set(ctx, &updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update invitation", goerr.V("id", updated.ID))
	}

	return &updated, nil
}

func (r *invitationRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.TeamInvitation, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	invitations := make([]*model.TeamInvitation, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate invitations", goerr.V("caseID", caseID))
		}

		var inv model.TeamInvitation
		if err := docSnap.DataTo(&inv); err != nil {
			return nil, goerr.Wrap(err, "failed to decode invitation")
		}
		invitations = append(invitations, &inv)
	}

	return invitations, nil
}

type memberRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMemberRepository(client *firestore.Client) *memberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) collection() string {
	return collectionName(r.collectionPrefix, "team_members")
}

func (r *memberRepository) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	created := *m
	created.ID = types.NewMemberID()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create member", goerr.V("caseID", created.CaseID))
	}

	return &created, nil
}

func (r *memberRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.TeamMember, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	members := make([]*model.TeamMember, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate members", goerr.V("caseID", caseID))
		}

		var m model.TeamMember
		if err := docSnap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode member")
		}
		members = append(members, &m)
	}

	return members, nil
}

func (r *memberRepository) Delete(ctx context.Context, id types.MemberID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get member", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete member", goerr.V("id", id))
	}

	return nil
}
