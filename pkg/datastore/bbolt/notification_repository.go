package bbolt

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/notification"
)

const (
	notificationBucket = "notification"
)

type notificationRepository struct {
	db *bbolt.DB
}

func NewNotificationRepository(db *bbolt.DB) notification.Repository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) FindAll(ctx context.Context, options *notification.FindOptions) ([]*notification.Notification, error) {
	return dbView(ctx, r.db, notificationBucket, func(bucket *bbolt.Bucket) ([]*notification.Notification, error) {
		return findJSON(bucket, options.Ids, func(n *notification.Notification) bool {
			return anyOf(options.UserIds, n.UserId)
		})
	})
}

func (r *notificationRepository) CreateAll(ctx context.Context, notifications []*notification.Notification) ([]*notification.Notification, error) {
	return dbUpdate(ctx, r.db, notificationBucket, func(bucket *bbolt.Bucket) ([]*notification.Notification, error) {
		for _, n := range notifications {
			if bucket.Get([]byte(n.Id)) != nil {
				return nil, notification.ErrNotificationIdAlreadyExists
			}
			if err := putJSON(bucket, n.Id, n); err != nil {
				return nil, err
			}
		}
		return notifications, nil
	})
}
