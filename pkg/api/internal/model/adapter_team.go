package model

import (
	"github.com/UnAfraid/teamboard/pkg/internal/adapt"
	"github.com/UnAfraid/teamboard/pkg/manage"
	"github.com/UnAfraid/teamboard/pkg/notification"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

func ToTeam(team *team.Team) *Team {
	if team == nil {
		return nil
	}
	return &Team{
		ID:         team.Id,
		OrgID:      team.OrgId,
		Name:       team.Name,
		IsArchived: team.IsArchived,
		CreatedAt:  team.CreatedAt,
		UpdatedAt:  team.UpdatedAt,
	}
}

func ToTeamMember(teamMember *teammember.TeamMember) *TeamMember {
	if teamMember == nil {
		return nil
	}
	return &TeamMember{
		ID:            teamMember.Id,
		TeamID:        teamMember.TeamId,
		UserID:        teamMember.UserId,
		PreferredName: teamMember.PreferredName,
		IsLead:        teamMember.IsLead,
	}
}

func ToMeetingTemplate(meetingTemplate *template.MeetingTemplate) *MeetingTemplate {
	if meetingTemplate == nil {
		return nil
	}
	return &MeetingTemplate{
		ID:          meetingTemplate.Id,
		Name:        meetingTemplate.Name,
		MeetingType: meetingTemplate.MeetingType,
		IsActive:    meetingTemplate.IsActive,
	}
}

func ToNotification(n *notification.Notification) *Notification {
	if n == nil {
		return nil
	}
	return &Notification{
		ID:     n.Id,
		Type:   n.Type,
		Status: n.Status,
		UserID: n.UserId,
		TeamID: n.TeamId,
	}
}

func ToTeamChangedEvent(event *team.ChangedEvent) *TeamChangedEvent {
	if event == nil {
		return nil
	}
	return &TeamChangedEvent{
		Action: event.Action,
		Team:   ToTeam(event.Team),
	}
}

func ToArchiveTeamPayload(archived *manage.ArchivedTeam) *ArchiveTeamPayload {
	return &ArchiveTeamPayload{
		Team: ToTeam(archived.Team),
		RemovedFromUserIds: adapt.Array(archived.RemovedFromUsers, func(u *user.User) string {
			return u.Id
		}),
		DeactivatedTemplateIds: adapt.Array(archived.DeactivatedTemplates, func(mt *template.MeetingTemplate) string {
			return mt.Id
		}),
		Notifications: adapt.Array(archived.Notifications, ToNotification),
	}
}
