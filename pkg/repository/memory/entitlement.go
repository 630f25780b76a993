package memory

import (
	"context"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
)

type entitlementRepository struct {
	mu    sync.RWMutex
	roles map[types.UserID]*model.Entitlement
}

func newEntitlementRepository() *entitlementRepository {
	return &entitlementRepository{
		roles: make(map[types.UserID]*model.Entitlement),
	}
}

func (r *entitlementRepository) GetRole(ctx context.Context, userID types.UserID) (types.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ent, exists := r.roles[userID]
	if !exists {
		return types.RoleFree, nil
	}

	return ent.Role.Normalize(), nil
}

func (r *entitlementRepository) SetRole(ctx context.Context, userID types.UserID, role types.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[userID] = &model.Entitlement{
		UserID:    userID,
		Role:      role.Normalize(),
		UpdatedAt: time.Now().UTC(),
	}

	return nil
}

type subscriptionRepository struct {
	mu   sync.RWMutex
	subs map[types.UserID]*model.Subscription
}

func newSubscriptionRepository() *subscriptionRepository {
	return &subscriptionRepository{
		subs: make(map[types.UserID]*model.Subscription),
	}
}

func copySubscription(s *model.Subscription) *model.Subscription {
	copied := *s
	if s.CurrentPeriodStart != nil {
		t := *s.CurrentPeriodStart
		copied.CurrentPeriodStart = &t
	}
	if s.CurrentPeriodEnd != nil {
		t := *s.CurrentPeriodEnd
		copied.CurrentPeriodEnd = &t
	}
	if s.TrialEnd != nil {
		t := *s.TrialEnd
		copied.TrialEnd = &t
	}
	return &copied
}

func (r *subscriptionRepository) Get(ctx context.Context, userID types.UserID) (*model.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, exists := r.subs[userID]
	if !exists {
		return nil, nil
	}

	return copySubscription(sub), nil
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copySubscription(sub)
	stored.UpdatedAt = time.Now().UTC()
	r.subs[stored.UserID] = stored

	return nil
}

func (r *subscriptionRepository) FindByCustomerID(ctx context.Context, customerID string) (*model.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sub := range r.subs {
		if sub.StripeCustomerID == customerID {
			return copySubscription(sub), nil
		}
	}

	return nil, nil
}
