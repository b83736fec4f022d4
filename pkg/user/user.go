package user

import (
	"time"
)

type User struct {
	Id            string
	Email         string
	PreferredName string
	TeamIds       []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) Update(options *UpdateOptions, fieldMask *UpdateFieldMask) {
	if fieldMask.PreferredName {
		u.PreferredName = options.PreferredName
	}

	if fieldMask.TeamIds {
		u.TeamIds = options.TeamIds
	}
}
