package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type invitationRepository struct {
	mu          sync.RWMutex
	invitations map[types.InvitationID]*model.TeamInvitation
}

func newInvitationRepository() *invitationRepository {
	return &invitationRepository{
		invitations: make(map[types.InvitationID]*model.TeamInvitation),
	}
}

func copyInvitation(inv *model.TeamInvitation) *model.TeamInvitation {
	copied := *inv
	if inv.AcceptedAt != nil {
		t := *inv.AcceptedAt
		copied.AcceptedAt = &t
	}
	return &copied
}

func (r *invitationRepository) Create(ctx context.Context, inv *model.TeamInvitation) (*model.TeamInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyInvitation(inv)
	created.ID = types.NewInvitationID()
	created.CreatedAt = time.Now().UTC()

	r.invitations[created.ID] = created
	return copyInvitation(created), nil
}

func (r *invitationRepository) Get(ctx context.Context, id types.InvitationID) (*model.TeamInvitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, exists := r.invitations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "invitation not found", goerr.V("id", id))
	}

	return copyInvitation(inv), nil
}

func (r *invitationRepository) Update(ctx context.Context, inv *model.TeamInvitation) (*model.TeamInvitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.invitations[inv.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "invitation not found", goerr.V("id", inv.ID))
	}

	updated := copyInvitation(inv)
	updated.CreatedAt = existing.CreatedAt

	r.invitations[updated.ID] = updated
	return copyInvitation(updated), nil
}

func (r *invitationRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.TeamInvitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invitations := make([]*model.TeamInvitation, 0)
	for _, inv := range r.invitations {
		if inv.CaseID == caseID {
			invitations = append(invitations, copyInvitation(inv))
		}
	}

	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})

	return invitations, nil
}

type memberRepository struct {
	mu      sync.RWMutex
	members map[types.MemberID]*model.TeamMember
}

func newMemberRepository() *memberRepository {
	return &memberRepository{
		members: make(map[types.MemberID]*model.TeamMember),
	}
}

func copyMember(m *model.TeamMember) *model.TeamMember {
	copied := *m
	return &copied
}

func (r *memberRepository) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMember(m)
	created.ID = types.NewMemberID()
	created.CreatedAt = time.Now().UTC()

	r.members[created.ID] = created
	return copyMember(created), nil
}

func (r *memberRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*model.TeamMember, 0)
	for _, m := range r.members {
		if m.CaseID == caseID {
			members = append(members, copyMember(m))
		}
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})

	return members, nil
}

func (r *memberRepository) Delete(ctx context.Context, id types.MemberID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[id]; !exists {
		return goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
	}

	delete(r.members, id)
	return nil
}
