package meeting

import (
	"time"
)

type FindOptions struct {
	Ids        []string
	TeamIds    []string
	ActiveOnly bool
}

type CreateOptions struct {
	TeamId              string
	Name                string
	MeetingType         string
	CreatedBy           string
	FacilitatorUserId   string
	ShowConversionModal bool
}

type UpdateOptions struct {
	ShowConversionModal bool
	EndedAt             *time.Time
}

type UpdateFieldMask struct {
	ShowConversionModal bool
	EndedAt             bool
}
