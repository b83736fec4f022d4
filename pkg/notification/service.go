package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	FindNotifications(ctx context.Context, options *FindOptions) ([]*Notification, error)
	NotifyTeamArchived(ctx context.Context, options *TeamArchivedOptions) ([]*Notification, error)
}

type service struct {
	notificationRepository Repository
}

func NewService(notificationRepository Repository) Service {
	return &service{
		notificationRepository: notificationRepository,
	}
}

func (s *service) FindNotifications(ctx context.Context, options *FindOptions) ([]*Notification, error) {
	return s.notificationRepository.FindAll(ctx, options)
}

// NotifyTeamArchived creates one unread TEAM_ARCHIVED notification per user, the archivor excluded.
func (s *service) NotifyTeamArchived(ctx context.Context, options *TeamArchivedOptions) ([]*Notification, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.TeamId) == 0 {
		return nil, ErrTeamIdRequired
	}

	now := time.Now()
	var notifications []*Notification
	for _, userId := range options.UserIds {
		if userId == options.ArchivorUserId {
			continue
		}

		id, err := uuid.NewRandom()
		if err != nil {
			return nil, fmt.Errorf("failed to generate new id: %w", err)
		}

		notifications = append(notifications, &Notification{
			Id:             id.String(),
			Type:           TypeTeamArchived,
			Status:         StatusUnread,
			UserId:         userId,
			TeamId:         options.TeamId,
			ArchivorUserId: options.ArchivorUserId,
			CreatedAt:      now,
		})
	}

	if len(notifications) == 0 {
		return nil, nil
	}
	return s.notificationRepository.CreateAll(ctx, notifications)
}
