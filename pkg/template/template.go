package template

import (
	"time"
)

type MeetingTemplate struct {
	Id          string
	TeamId      string
	OrgId       string
	Name        string
	MeetingType string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
