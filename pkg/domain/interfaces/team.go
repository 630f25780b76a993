package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// InvitationRepository defines the interface for TeamInvitation data access
type InvitationRepository interface {
	// Create creates a new invitation with a generated ID
	Create(ctx context.Context, inv *model.TeamInvitation) (*model.TeamInvitation, error)

	// Get retrieves an invitation by ID
	Get(ctx context.Context, id types.InvitationID) (*model.TeamInvitation, error)

	// Update replaces an existing invitation
	Update(ctx context.Context, inv *model.TeamInvitation) (*model.TeamInvitation, error)

	// ListByCase retrieves all invitations for a case, newest first
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.TeamInvitation, error)
}

// MemberRepository defines the interface for TeamMember data access
type MemberRepository interface {
	// Create creates a new membership with a generated ID
	Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)

	// ListByCase retrieves all members of a case
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.TeamMember, error)

	// Delete removes a membership by ID
	Delete(ctx context.Context, id types.MemberID) error
}

// NotificationRepository defines the interface for Notification data access
type NotificationRepository interface {
	// Create creates a new notification with a generated ID
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// ListByUser retrieves notifications for a user, newest first, up to
	// limit entries (no limit when limit <= 0).
	ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.Notification, error)

	// MarkRead flips the read flag of a notification
	MarkRead(ctx context.Context, id types.NotificationID) error
}

// AccessLogRepository defines the interface for case access log entries
type AccessLogRepository interface {
	// Append appends a new access log entry with a generated ID
	Append(ctx context.Context, entry *model.AccessLog) (*model.AccessLog, error)

	// ListByCase retrieves access log entries for a case, newest first
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.AccessLog, error)
}
