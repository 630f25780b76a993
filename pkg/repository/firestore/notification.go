package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) collection() string {
	return collectionName(r.collectionPrefix, "notifications")
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	created := *n
	created.ID = types.NewNotificationID()
	created.Read = false
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("userID", created.UserID))
	}

	return &created, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.Notification, error) {
	query := r.client.Collection(r.collection()).
		Where("UserID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	notifications := make([]*model.Notification, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications", goerr.V("userID", userID))
		}

		var n model.Notification
		if err := docSnap.DataTo(&n); err != nil {
			return nil, goerr.Wrap(err, "failed to decode notification")
		}
		notifications = append(notifications, &n)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id types.NotificationID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "Read", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}

	return nil
}

type accessLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAccessLogRepository(client *firestore.Client) *accessLogRepository {
	return &accessLogRepository{client: client}
}

func (r *accessLogRepository) collection() string {
	return collectionName(r.collectionPrefix, "access_logs")
}

func (r *accessLogRepository) Append(ctx context.Context, entry *model.AccessLog) (*model.AccessLog, error) {
	created := *entry
	created.ID = types.NewAccessLogID()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, &created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append access log", goerr.V("caseID", created.CaseID))
	}

	return &created, nil
}

func (r *accessLogRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.AccessLog, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.AccessLog, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate access logs", goerr.V("caseID", caseID))
		}

		var e model.AccessLog
		if err := docSnap.DataTo(&e); err != nil {
			return nil, goerr.Wrap(err, "failed to decode access log")
		}
		entries = append(entries, &e)
	}

	return entries, nil
}
