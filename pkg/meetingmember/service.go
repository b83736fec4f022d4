package meetingmember

import (
	"context"
	"time"
)

type Service interface {
	FindMeetingMembers(ctx context.Context, options *FindOptions) ([]*MeetingMember, error)
	CreateMeetingMember(ctx context.Context, options *CreateOptions) (*MeetingMember, error)
}

type service struct {
	meetingMemberRepository Repository
}

func NewService(meetingMemberRepository Repository) Service {
	return &service{
		meetingMemberRepository: meetingMemberRepository,
	}
}

func (s *service) FindMeetingMembers(ctx context.Context, options *FindOptions) ([]*MeetingMember, error) {
	return s.meetingMemberRepository.FindAll(ctx, options)
}

func (s *service) CreateMeetingMember(ctx context.Context, options *CreateOptions) (*MeetingMember, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.MeetingId) == 0 {
		return nil, ErrMeetingIdRequired
	}
	if len(options.UserId) == 0 {
		return nil, ErrUserIdRequired
	}

	return s.meetingMemberRepository.Create(ctx, &MeetingMember{
		Id:          Id(options.MeetingId, options.UserId),
		MeetingId:   options.MeetingId,
		TeamId:      options.TeamId,
		UserId:      options.UserId,
		IsCheckedIn: options.IsCheckedIn,
		CreatedAt:   time.Now(),
	})
}
