package teammember

import (
	"context"
	"time"
)

type Service interface {
	FindTeamMembers(ctx context.Context, options *FindOptions) ([]*TeamMember, error)
	CreateTeamMember(ctx context.Context, options *CreateOptions) (*TeamMember, error)
}

type service struct {
	teamMemberRepository Repository
}

func NewService(teamMemberRepository Repository) Service {
	return &service{
		teamMemberRepository: teamMemberRepository,
	}
}

func (s *service) FindTeamMembers(ctx context.Context, options *FindOptions) ([]*TeamMember, error) {
	return s.teamMemberRepository.FindAll(ctx, options)
}

func (s *service) CreateTeamMember(ctx context.Context, options *CreateOptions) (*TeamMember, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.TeamId) == 0 {
		return nil, ErrTeamIdRequired
	}
	if len(options.UserId) == 0 {
		return nil, ErrUserIdRequired
	}

	now := time.Now()
	return s.teamMemberRepository.Create(ctx, &TeamMember{
		Id:            Id(options.TeamId, options.UserId),
		TeamId:        options.TeamId,
		UserId:        options.UserId,
		PreferredName: options.PreferredName,
		IsLead:        options.IsLead,
		IsNotRemoved:  true,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}
