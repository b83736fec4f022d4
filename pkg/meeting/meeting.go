package meeting

import (
	"time"
)

const (
	TypeRetrospective = "retrospective"
	TypeAction        = "action"
	TypePoker         = "poker"
	TypeTeamPrompt    = "teamPrompt"
)

// Meeting documents still live in the legacy table layout, hence the explicit field names.
type Meeting struct {
	Id                  string     `json:"id"`
	TeamId              string     `json:"teamId"`
	Name                string     `json:"name"`
	MeetingType         string     `json:"meetingType"`
	CreatedBy           string     `json:"createdBy"`
	FacilitatorUserId   string     `json:"facilitatorUserId"`
	ShowConversionModal bool       `json:"showConversionModal,omitempty"`
	EndedAt             *time.Time `json:"endedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (m *Meeting) IsActive() bool {
	return m.EndedAt == nil
}

func (m *Meeting) Update(options *UpdateOptions, fieldMask *UpdateFieldMask) {
	if fieldMask.ShowConversionModal {
		m.ShowConversionModal = options.ShowConversionModal
	}

	if fieldMask.EndedAt {
		m.EndedAt = options.EndedAt
	}
}
