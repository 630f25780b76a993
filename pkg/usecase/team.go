package usecase

import (
	"context"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

// InviteMember adds a registered user to a case team directly. The invitee
// is resolved by email; users without a profile must go through
// CreateInvitation instead. The invitee is notified asynchronously.
func (uc *UseCases) InviteMember(ctx context.Context, caseID types.CaseID, inviterID types.UserID, email string, role types.TeamRole) (*model.TeamMember, error) {
	role = role.Normalize()
	if !role.IsValid() {
		return nil, goerr.New("invalid team role", goerr.V("role", role))
	}

	c, err := uc.repo.Case().Get(ctx, caseID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", caseID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", caseID))
	}

	profile, err := uc.repo.Profile().GetByEmail(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up profile", goerr.V("email", email))
	}
	if profile == nil {
		return nil, goerr.Wrap(ErrProfileNotFound, "no account for email", goerr.V("email", email))
	}

	member, err := uc.repo.Member().Create(ctx, &model.TeamMember{
		CaseID:        caseID,
		InviterID:     inviterID,
		InvitedUserID: profile.UserID,
		Role:          role,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add team member", goerr.V("caseID", caseID))
	}

	uc.notifyInvitation(ctx, profile.UserID, c, role, nil)

	return member, nil
}

// CreateInvitation records a pending invite addressed to an email. When the
// email already belongs to an account, that user is notified asynchronously.
func (uc *UseCases) CreateInvitation(ctx context.Context, caseID types.CaseID, inviterID types.UserID, email string, role types.TeamRole) (*model.TeamInvitation, error) {
	role = role.Normalize()
	if !role.IsValid() {
		return nil, goerr.New("invalid team role", goerr.V("role", role))
	}

	c, err := uc.repo.Case().Get(ctx, caseID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", caseID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", caseID))
	}

	invitation, err := uc.repo.Invitation().Create(ctx, &model.TeamInvitation{
		CaseID:       caseID,
		InviterID:    inviterID,
		InviteeEmail: email,
		Role:         role,
		Status:       types.InvitationPending,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create invitation", goerr.V("caseID", caseID))
	}

	profile, err := uc.repo.Profile().GetByEmail(ctx, email)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up profile", goerr.V("email", email))
	}
	if profile != nil {
		uc.notifyInvitation(ctx, profile.UserID, c, role, invitation)
	}

	return invitation, nil
}

func (uc *UseCases) notifyInvitation(ctx context.Context, userID types.UserID, c *model.DecisionCase, role types.TeamRole, invitation *model.TeamInvitation) {
	metadata := map[string]any{
		"case_id": c.ID.String(),
		"role":    role.String(),
	}
	if invitation != nil {
		metadata["invitation_id"] = invitation.ID.String()
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.repo.Notification().Create(ctx, &model.Notification{
			UserID:   userID,
			Type:     "team_invitation",
			Title:    "You have been invited to collaborate",
			Message:  "You have been invited to the decision case: " + c.Title,
			Link:     "/cases/" + c.ID.String(),
			Metadata: metadata,
		})
		return err
	})
}

// AcceptInvitation joins the invitee to the case team, marks the invitation
// accepted, and records the access event. Invitations carry no dedup guard:
// accepting twice adds a second membership row.
func (uc *UseCases) AcceptInvitation(ctx context.Context, invitationID types.InvitationID, userID types.UserID) (*model.TeamMember, error) {
	invitation, err := uc.repo.Invitation().Get(ctx, invitationID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrInvitationNotFound, "no such invitation", goerr.V("invitationID", invitationID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch invitation", goerr.V("invitationID", invitationID))
	}

	member, err := uc.repo.Member().Create(ctx, &model.TeamMember{
		CaseID:        invitation.CaseID,
		InviterID:     invitation.InviterID,
		InvitedUserID: userID,
		Role:          invitation.Role,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add team member", goerr.V("invitationID", invitationID))
	}

	now := time.Now().UTC()
	invitation.Status = types.InvitationAccepted
	invitation.InviteeUserID = userID
	invitation.AcceptedAt = &now
	if _, err := uc.repo.Invitation().Update(ctx, invitation); err != nil {
		return nil, goerr.Wrap(err, "failed to mark invitation accepted", goerr.V("invitationID", invitationID))
	}

	if _, err := uc.repo.AccessLog().Append(ctx, &model.AccessLog{
		CaseID: invitation.CaseID,
		UserID: userID,
		Action: "joined_team",
		Metadata: map[string]any{
			"invitation_id": invitationID.String(),
			"role":          invitation.Role.String(),
		},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to log case access", goerr.V("invitationID", invitationID))
	}

	return member, nil
}

// ListMembers returns the team of a case
func (uc *UseCases) ListMembers(ctx context.Context, caseID types.CaseID) ([]*model.TeamMember, error) {
	members, err := uc.repo.Member().ListByCase(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list members", goerr.V("caseID", caseID))
	}
	return members, nil
}

// ListNotifications returns a user's notifications, newest first
func (uc *UseCases) ListNotifications(ctx context.Context, userID types.UserID, limit int) ([]*model.Notification, error) {
	notifications, err := uc.repo.Notification().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list notifications", goerr.V("userID", userID))
	}
	return notifications, nil
}

// MarkNotificationRead flips a notification's read flag
func (uc *UseCases) MarkNotificationRead(ctx context.Context, id types.NotificationID) error {
	if err := uc.repo.Notification().MarkRead(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}
	return nil
}
