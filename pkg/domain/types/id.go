package types

import "github.com/google/uuid"

// UserID is the identifier of an authenticated user, issued by the external
// auth system. It is opaque to this service.
type UserID string

func (id UserID) String() string {
	return string(id)
}

// CaseID identifies a decision case
type CaseID string

// NewCaseID generates a new time-ordered case ID
func NewCaseID() CaseID {
	return CaseID(uuid.Must(uuid.NewV7()).String())
}

func (id CaseID) String() string {
	return string(id)
}

// AnalysisID identifies a decision analysis
type AnalysisID string

func NewAnalysisID() AnalysisID {
	return AnalysisID(uuid.Must(uuid.NewV7()).String())
}

func (id AnalysisID) String() string {
	return string(id)
}

// SimulationID identifies a risk simulation
type SimulationID string

func NewSimulationID() SimulationID {
	return SimulationID(uuid.Must(uuid.NewV7()).String())
}

func (id SimulationID) String() string {
	return string(id)
}

// RevisionID identifies an audit revision entry
type RevisionID string

func NewRevisionID() RevisionID {
	return RevisionID(uuid.Must(uuid.NewV7()).String())
}

func (id RevisionID) String() string {
	return string(id)
}

// InvitationID identifies a team invitation
type InvitationID string

func NewInvitationID() InvitationID {
	return InvitationID(uuid.Must(uuid.NewV7()).String())
}

func (id InvitationID) String() string {
	return string(id)
}

// MemberID identifies a team membership record
type MemberID string

func NewMemberID() MemberID {
	return MemberID(uuid.Must(uuid.NewV7()).String())
}

func (id MemberID) String() string {
	return string(id)
}

// NotificationID identifies an in-app notification
type NotificationID string

func NewNotificationID() NotificationID {
	return NotificationID(uuid.Must(uuid.NewV7()).String())
}

func (id NotificationID) String() string {
	return string(id)
}

// AccessLogID identifies a case access log entry
type AccessLogID string

func NewAccessLogID() AccessLogID {
	return AccessLogID(uuid.Must(uuid.NewV7()).String())
}

func (id AccessLogID) String() string {
	return string(id)
}
