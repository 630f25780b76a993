package interfaces

import (
	"context"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

// EntitlementRepository defines the interface for per-user role records
type EntitlementRepository interface {
	// GetRole returns the user's role. A user without a record is free.
	GetRole(ctx context.Context, userID types.UserID) (types.Role, error)

	// SetRole upserts the user's role
	SetRole(ctx context.Context, userID types.UserID, role types.Role) error
}

// SubscriptionRepository defines the interface for subscription mirrors
type SubscriptionRepository interface {
	// Get retrieves the subscription for a user, or nil if none exists
	Get(ctx context.Context, userID types.UserID) (*model.Subscription, error)

	// Upsert creates or replaces the subscription for sub.UserID
	Upsert(ctx context.Context, sub *model.Subscription) error

	// FindByCustomerID looks up the subscription holding the given provider
	// customer ID. Returns nil, nil if no match.
	FindByCustomerID(ctx context.Context, customerID string) (*model.Subscription, error)
}
