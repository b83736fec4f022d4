package model

import (
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
)

func ToMeeting(meeting *meeting.Meeting) *Meeting {
	if meeting == nil {
		return nil
	}
	return &Meeting{
		ID:                  meeting.Id,
		TeamID:              meeting.TeamId,
		Name:                meeting.Name,
		MeetingType:         meeting.MeetingType,
		ShowConversionModal: meeting.ShowConversionModal,
		EndedAt:             meeting.EndedAt,
		CreatedAt:           meeting.CreatedAt,
	}
}

func ToMeetingMember(meetingMember *meetingmember.MeetingMember) *MeetingMember {
	if meetingMember == nil {
		return nil
	}
	return &MeetingMember{
		ID:          meetingMember.Id,
		MeetingID:   meetingMember.MeetingId,
		UserID:      meetingMember.UserId,
		IsCheckedIn: meetingMember.IsCheckedIn,
	}
}
