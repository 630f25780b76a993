package types

import "fmt"

// TeamRole represents a collaborator's role on a decision case
type TeamRole string

const (
	TeamRoleViewer TeamRole = "viewer"
	TeamRoleEditor TeamRole = "editor"
	TeamRoleAdmin  TeamRole = "admin"
)

// AllTeamRoles returns all valid team roles
func AllTeamRoles() []TeamRole {
	return []TeamRole{
		TeamRoleViewer,
		TeamRoleEditor,
		TeamRoleAdmin,
	}
}

// IsValid checks if the team role is valid
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleViewer, TeamRoleEditor, TeamRoleAdmin:
		return true
	default:
		return false
	}
}

// Normalize returns the team role, treating empty as TeamRoleViewer.
func (r TeamRole) Normalize() TeamRole {
	if r == "" {
		return TeamRoleViewer
	}
	return r
}

// String returns the string representation of the team role
func (r TeamRole) String() string {
	return string(r)
}

// ParseTeamRole parses a string into a TeamRole
func ParseTeamRole(s string) (TeamRole, error) {
	role := TeamRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid team role: %s", s)
	}
	return role, nil
}

// InvitationStatus represents the state of a team invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// IsValid checks if the invitation status is valid
func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the invitation status
func (s InvitationStatus) String() string {
	return string(s)
}
