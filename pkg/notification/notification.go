package notification

import (
	"time"
)

const (
	TypeTeamArchived = "TEAM_ARCHIVED"

	StatusUnread = "UNREAD"
)

type Notification struct {
	Id             string
	Type           string
	Status         string
	UserId         string
	TeamId         string
	ArchivorUserId string
	CreatedAt      time.Time
}
