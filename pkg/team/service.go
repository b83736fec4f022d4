package team

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/subscription"
)

var subscriptionPath = path.Join("node", "Team")

type Service interface {
	FindTeams(ctx context.Context, options *FindOptions) ([]*Team, error)
	CreateTeam(ctx context.Context, options *CreateOptions) (*Team, error)
	ArchiveTeam(ctx context.Context, teamId string) (*Team, error)
	Subscribe(ctx context.Context, teamId string) (<-chan *ChangedEvent, error)
}

type service struct {
	teamRepository Repository
	subscription   subscription.Subscription
}

func NewService(teamRepository Repository, subscription subscription.Subscription) Service {
	return &service{
		teamRepository: teamRepository,
		subscription:   subscription,
	}
}

func (s *service) FindTeams(ctx context.Context, options *FindOptions) ([]*Team, error) {
	return s.teamRepository.FindAll(ctx, options)
}

func (s *service) CreateTeam(ctx context.Context, options *CreateOptions) (*Team, error) {
	team, err := processCreateTeam(options)
	if err != nil {
		return nil, err
	}

	createdTeam, err := s.teamRepository.Create(ctx, team)
	if err != nil {
		return nil, err
	}

	s.notifyAfterCommit(ctx, ChangedActionCreated, createdTeam)
	return createdTeam, nil
}

func (s *service) ArchiveTeam(ctx context.Context, teamId string) (*Team, error) {
	archivedTeam, err := s.teamRepository.Archive(ctx, teamId)
	if err != nil {
		return nil, err
	}
	if archivedTeam == nil {
		return nil, ErrTeamAlreadyArchived
	}

	s.notifyAfterCommit(ctx, ChangedActionArchived, archivedTeam)
	return archivedTeam, nil
}

func (s *service) Subscribe(ctx context.Context, teamId string) (<-chan *ChangedEvent, error) {
	bytesChannel, err := s.subscription.Subscribe(ctx, path.Join(subscriptionPath, teamId))
	if err != nil {
		return nil, err
	}

	observerChan := make(chan *ChangedEvent)
	go func() {
		defer close(observerChan)

		for bytes := range bytesChannel {
			var changedEvent *ChangedEvent
			if err := json.Unmarshal(bytes, &changedEvent); err != nil {
				logrus.WithError(err).Warn("failed to decode team changed event")
				return
			}

			select {
			case observerChan <- changedEvent:
			case <-ctx.Done():
				return
			}
		}
	}()

	return observerChan, nil
}

func (s *service) notifyAfterCommit(ctx context.Context, action string, team *Team) {
	dbx.AfterCommit(ctx, func() {
		if err := s.notify(action, team); err != nil {
			logrus.
				WithError(err).
				WithField("teamId", team.Id).
				WithField("action", action).
				Warn("failed to notify team changed event")
		}
	})
}

func (s *service) notify(action string, team *Team) error {
	channel := path.Join(subscriptionPath, team.Id)
	if !s.subscription.HasSubscribers(channel) {
		return nil
	}

	bytes, err := json.Marshal(ChangedEvent{Action: action, Team: team})
	if err != nil {
		return err
	}

	if err := s.subscription.Notify(bytes, channel); err != nil {
		return fmt.Errorf("failed to notify team changed event: %w", err)
	}
	return nil
}

func processCreateTeam(options *CreateOptions) (*Team, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.OrgId) == 0 {
		return nil, ErrOrgIdRequired
	}

	name := strings.TrimSpace(options.Name)
	if len(name) == 0 {
		return nil, ErrNameRequired
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new id: %w", err)
	}

	now := time.Now()
	return &Team{
		Id:        id.String(),
		OrgId:     options.OrgId,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
