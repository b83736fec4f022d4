package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

var meetingTypes = []string{TypeRetrospective, TypeAction, TypePoker, TypeTeamPrompt}

type Service interface {
	FindMeetings(ctx context.Context, options *FindOptions) ([]*Meeting, error)
	CreateMeeting(ctx context.Context, options *CreateOptions) (*Meeting, error)
	EndMeeting(ctx context.Context, meetingId string) (*Meeting, error)
	SetShowConversionModal(ctx context.Context, meetingIds []string, showConversionModal bool) ([]*Meeting, error)
}

type service struct {
	meetingRepository Repository
}

func NewService(meetingRepository Repository) Service {
	return &service{
		meetingRepository: meetingRepository,
	}
}

func (s *service) FindMeetings(ctx context.Context, options *FindOptions) ([]*Meeting, error) {
	return s.meetingRepository.FindAll(ctx, options)
}

func (s *service) CreateMeeting(ctx context.Context, options *CreateOptions) (*Meeting, error) {
	meeting, err := processCreateMeeting(options)
	if err != nil {
		return nil, err
	}
	return s.meetingRepository.Create(ctx, meeting)
}

func (s *service) EndMeeting(ctx context.Context, meetingId string) (*Meeting, error) {
	meetings, err := s.meetingRepository.FindAll(ctx, &FindOptions{
		Ids: []string{meetingId},
	})
	if err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return nil, ErrMeetingNotFound
	}
	if !meetings[0].IsActive() {
		return nil, ErrMeetingAlreadyEnded
	}

	now := time.Now()
	return s.meetingRepository.Update(ctx, &Meeting{
		Id:      meetingId,
		EndedAt: &now,
	}, &UpdateFieldMask{
		EndedAt: true,
	})
}

func (s *service) SetShowConversionModal(ctx context.Context, meetingIds []string, showConversionModal bool) ([]*Meeting, error) {
	updatedMeetings := make([]*Meeting, 0, len(meetingIds))
	for _, meetingId := range meetingIds {
		updatedMeeting, err := s.meetingRepository.Update(ctx, &Meeting{
			Id:                  meetingId,
			ShowConversionModal: showConversionModal,
		}, &UpdateFieldMask{
			ShowConversionModal: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update meeting %s: %w", meetingId, err)
		}
		updatedMeetings = append(updatedMeetings, updatedMeeting)
	}
	return updatedMeetings, nil
}

func processCreateMeeting(options *CreateOptions) (*Meeting, error) {
	if options == nil {
		return nil, ErrCreateOptionsRequired
	}
	if len(options.TeamId) == 0 {
		return nil, ErrTeamIdRequired
	}
	if len(options.CreatedBy) == 0 {
		return nil, ErrCreatedByRequired
	}
	if !slices.Contains(meetingTypes, options.MeetingType) {
		return nil, ErrMeetingTypeInvalid
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate new id: %w", err)
	}

	facilitatorUserId := options.FacilitatorUserId
	if len(facilitatorUserId) == 0 {
		facilitatorUserId = options.CreatedBy
	}

	now := time.Now()
	return &Meeting{
		Id:                  id.String(),
		TeamId:              options.TeamId,
		Name:                strings.TrimSpace(options.Name),
		MeetingType:         options.MeetingType,
		CreatedBy:           options.CreatedBy,
		FacilitatorUserId:   facilitatorUserId,
		ShowConversionModal: options.ShowConversionModal,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}
