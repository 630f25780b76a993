package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// Notification is an in-app notification created by server-side events such
// as a team invitation. It is mutated only to flip Read.
type Notification struct {
	ID        types.NotificationID `json:"id"`
	UserID    types.UserID         `json:"user_id"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Link      string               `json:"link,omitempty"`
	Metadata  map[string]any       `json:"metadata,omitempty"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
}

// AccessLog records an access event on a case, such as a user joining the
// team through an invitation. Entries are append-only.
type AccessLog struct {
	ID        types.AccessLogID `json:"id"`
	CaseID    types.CaseID      `json:"case_id"`
	UserID    types.UserID      `json:"user_id"`
	Action    string            `json:"action"`
	Metadata  map[string]any    `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
