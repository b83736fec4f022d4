package model

import (
	"time"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PreferredName string    `json:"preferredName"`
	TeamIds       []string  `json:"teamIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Organization struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	ShowConversionModal bool      `json:"showConversionModal"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Team struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"orgId"`
	Name       string    `json:"name"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type TeamMember struct {
	ID            string `json:"id"`
	TeamID        string `json:"teamId"`
	UserID        string `json:"userId"`
	PreferredName string `json:"preferredName"`
	IsLead        bool   `json:"isLead"`
}

type Meeting struct {
	ID                  string     `json:"id"`
	TeamID              string     `json:"teamId"`
	Name                string     `json:"name"`
	MeetingType         string     `json:"meetingType"`
	ShowConversionModal bool       `json:"showConversionModal"`
	EndedAt             *time.Time `json:"endedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type MeetingMember struct {
	ID          string `json:"id"`
	MeetingID   string `json:"meetingId"`
	UserID      string `json:"userId"`
	IsCheckedIn bool   `json:"isCheckedIn"`
}

type MeetingTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MeetingType string `json:"meetingType"`
	IsActive    bool   `json:"isActive"`
}

type Notification struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	UserID string `json:"userId"`
	TeamID string `json:"teamId"`
}

// MeetingView is a meeting with its resolved fields.
type MeetingView struct {
	*Meeting
	CreatedByUser       *User             `json:"createdByUser"`
	Facilitator         *TeamMember       `json:"facilitator"`
	MeetingMembers      []*MeetingMember  `json:"meetingMembers"`
	Team                *Team             `json:"team"`
	Organization        *Organization     `json:"organization"`
	ViewerMeetingMember *MeetingMember    `json:"viewerMeetingMember"`
	Errors              map[string]string `json:"errors,omitempty"`
}

type TeamView struct {
	*Team
	Members          []*TeamMember      `json:"members"`
	Lead             *TeamMember        `json:"lead"`
	MeetingTemplates []*MeetingTemplate `json:"meetingTemplates,omitempty"`
	ActiveMeetings   []*Meeting         `json:"activeMeetings,omitempty"`
	Errors           map[string]string  `json:"errors,omitempty"`
}

type OrganizationTeams struct {
	Organization   *Organization     `json:"organization"`
	Teams          []*TeamView       `json:"teams"`
	ActiveMeetings []*Meeting        `json:"activeMeetings"`
	Errors         map[string]string `json:"errors,omitempty"`
}

type ArchiveTeamPayload struct {
	Team                   *Team           `json:"team"`
	RemovedFromUserIds     []string        `json:"removedFromUserIds"`
	DeactivatedTemplateIds []string        `json:"deactivatedTemplateIds"`
	Notifications          []*Notification `json:"notifications"`
}

type HideConversionModalPayload struct {
	Meetings []*Meeting `json:"meetings"`
}

type TeamChangedEvent struct {
	Action string `json:"action"`
	Team   *Team  `json:"team"`
}
