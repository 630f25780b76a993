package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// TeamInvitation is an invite addressed to an email that may not yet
// correspond to an account. It transitions pending to accepted exactly once,
// performed by the invitee.
type TeamInvitation struct {
	ID            types.InvitationID     `json:"id"`
	CaseID        types.CaseID           `json:"case_id"`
	InviterID     types.UserID           `json:"inviter_id"`
	InviteeEmail  string                 `json:"invitee_email"`
	InviteeUserID types.UserID           `json:"invitee_user_id,omitempty"`
	Role          types.TeamRole         `json:"role"`
	Status        types.InvitationStatus `json:"status"`
	AcceptedAt    *time.Time             `json:"accepted_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// TeamMember is a collaborator on a decision case. Created directly when the
// invitee already has a profile, or as a side effect of invitation
// acceptance.
type TeamMember struct {
	ID            types.MemberID `json:"id"`
	CaseID        types.CaseID   `json:"case_id"`
	InviterID     types.UserID   `json:"inviter_id"`
	InvitedUserID types.UserID   `json:"invited_user_id"`
	Role          types.TeamRole `json:"role"`
	CreatedAt     time.Time      `json:"created_at"`
}
