package types

import "fmt"

// Role represents a user's subscription tier
type Role string

const (
	RoleFree    Role = "free"
	RolePro     Role = "pro"
	RolePremium Role = "premium"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleFree,
		RolePro,
		RolePremium,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleFree, RolePro, RolePremium:
		return true
	default:
		return false
	}
}

// Normalize returns the role, treating empty as RoleFree. A user with no
// entitlement record is a free user.
func (r Role) Normalize() Role {
	if r == "" {
		return RoleFree
	}
	return r
}

// IsPremiumTier reports whether the role is served by the premium analysis
// backend. Both pro and premium map to the premium tier.
func (r Role) IsPremiumTier() bool {
	return r == RolePro || r == RolePremium
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
