package teammember

import (
	"time"
)

type TeamMember struct {
	Id            string
	TeamId        string
	UserId        string
	PreferredName string
	IsLead        bool
	IsNotRemoved  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Id is the identity of the membership of userId in teamId.
func Id(teamId string, userId string) string {
	return userId + "::" + teamId
}
