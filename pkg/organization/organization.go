package organization

import (
	"time"

	"golang.org/x/exp/slices"
)

type Organization struct {
	Id                  string
	Name                string
	AdminUserIds        []string
	ShowConversionModal bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (o *Organization) IsAdmin(userId string) bool {
	return slices.Contains(o.AdminUserIds, userId)
}
