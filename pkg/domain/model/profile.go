package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// Profile is the user profile maintained by the external auth system. This
// service only reads it, primarily to resolve an email address to a user ID
// when inviting collaborators.
type Profile struct {
	UserID      types.UserID
	Email       string
	FullName    string
	CompanyName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
