package model

import (
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// Revision is an immutable audit-log entry appended after significant case
// events such as analysis generation or simulation runs.
type Revision struct {
	ID        types.RevisionID   `json:"id"`
	CaseID    types.CaseID       `json:"case_id"`
	OwnerID   types.UserID       `json:"owner_id"`
	Type      types.RevisionType `json:"type"`
	Content   string             `json:"content"`
	Metadata  map[string]any     `json:"metadata,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
