package loaders

import (
	"github.com/UnAfraid/teamboard/pkg/dataloader"
)

// Primary loaders, keyed by entity id.
const (
	Users            dataloader.LoaderName = "users"
	Organizations    dataloader.LoaderName = "organizations"
	Teams            dataloader.LoaderName = "teams"
	TeamMembers      dataloader.LoaderName = "teamMembers"
	Meetings         dataloader.LoaderName = "meetings"
	MeetingMembers   dataloader.LoaderName = "meetingMembers"
	MeetingTemplates dataloader.LoaderName = "meetingTemplates"
)

// Derived loaders.
const (
	TeamsByOrgId              dataloader.LoaderName = "teamsByOrgId"
	TeamMembersByTeamId       dataloader.LoaderName = "teamMembersByTeamId"
	TeamMemberByTeamAndUser   dataloader.LoaderName = "teamMemberByTeamAndUser"
	MeetingMembersByMeetingId dataloader.LoaderName = "meetingMembersByMeetingId"
	MeetingTemplatesByTeamId  dataloader.LoaderName = "meetingTemplatesByTeamId"
	ActiveMeetingsByTeamId    dataloader.LoaderName = "activeMeetingsByTeamId"
	ActiveMeetingsByOrgId     dataloader.LoaderName = "activeMeetingsByOrgId"
	TeamLeadByTeamId          dataloader.LoaderName = "teamLeadByTeamId"
)

// TeamMemberKey addresses the membership of a user in a team.
type TeamMemberKey struct {
	TeamId string
	UserId string
}
