package notification

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*Notification, error)
	CreateAll(ctx context.Context, notifications []*Notification) ([]*Notification, error)
}
