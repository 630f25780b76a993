package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[types.NotificationID]*model.Notification
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[types.NotificationID]*model.Notification),
	}
}

func copyNotification(n *model.Notification) *model.Notification {
	copied := *n
	copied.Metadata = copyMetadata(n.Metadata)
	return &copied
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyNotification(n)
	created.ID = types.NewNotificationID()
	created.Read = false
	created.CreatedAt = time.Now().UTC()

	r.notifications[created.ID] = created
	return copyNotification(created), nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notifications := make([]*model.Notification, 0)
	for _, n := range r.notifications {
		if n.UserID == userID {
			notifications = append(notifications, copyNotification(n))
		}
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id types.NotificationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, exists := r.notifications[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}

	n.Read = true
	return nil
}

type accessLogRepository struct {
	mu      sync.RWMutex
	entries map[types.AccessLogID]*model.AccessLog
}

func newAccessLogRepository() *accessLogRepository {
	return &accessLogRepository{
		entries: make(map[types.AccessLogID]*model.AccessLog),
	}
}

func copyAccessLog(e *model.AccessLog) *model.AccessLog {
	copied := *e
	copied.Metadata = copyMetadata(e.Metadata)
	return &copied
}

func (r *accessLogRepository) Append(ctx context.Context, entry *model.AccessLog) (*model.AccessLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAccessLog(entry)
	created.ID = types.NewAccessLogID()
	created.CreatedAt = time.Now().UTC()

	r.entries[created.ID] = created
	return copyAccessLog(created), nil
}

func (r *accessLogRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.AccessLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*model.AccessLog, 0)
	for _, e := range r.entries {
		if e.CaseID == caseID {
			entries = append(entries, copyAccessLog(e))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}
