package team

import (
	"time"
)

type Team struct {
	Id         string
	OrgId      string
	Name       string
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
