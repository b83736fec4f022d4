package meetingmember

import (
	"time"
)

type MeetingMember struct {
	Id          string
	MeetingId   string
	TeamId      string
	UserId      string
	IsCheckedIn bool
	CreatedAt   time.Time
}

// Id is the identity of the attendance of userId in meetingId.
func Id(meetingId string, userId string) string {
	return userId + "::" + meetingId
}
