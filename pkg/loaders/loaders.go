package loaders

import (
	"context"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

type Config struct {
	UserService          user.Service
	OrganizationService  organization.Service
	TeamService          team.Service
	TeamMemberService    teammember.Service
	MeetingService       meeting.Service
	MeetingMemberService meetingmember.Service
	TemplateService      template.Service

	// MeetingSource reads meetings straight from their legacy table.
	MeetingSource dataloader.Source[string, *meeting.Meeting]
}

// Loaders is the loader table of teamboard together with the typed definitions resolvers use to
// get their loaders out of a registry.
type Loaders struct {
	table *dataloader.Table

	Users            *dataloader.Definition[string, *user.User]
	Organizations    *dataloader.Definition[string, *organization.Organization]
	Teams            *dataloader.Definition[string, *team.Team]
	TeamMembers      *dataloader.Definition[string, *teammember.TeamMember]
	Meetings         *dataloader.Definition[string, *meeting.Meeting]
	MeetingMembers   *dataloader.Definition[string, *meetingmember.MeetingMember]
	MeetingTemplates *dataloader.Definition[string, *template.MeetingTemplate]

	TeamsByOrgId              *dataloader.Definition[string, []*team.Team]
	TeamMembersByTeamId       *dataloader.Definition[string, []*teammember.TeamMember]
	TeamMemberByTeamAndUser   *dataloader.Definition[TeamMemberKey, *teammember.TeamMember]
	MeetingMembersByMeetingId *dataloader.Definition[string, []*meetingmember.MeetingMember]
	MeetingTemplatesByTeamId  *dataloader.Definition[string, []*template.MeetingTemplate]
	ActiveMeetingsByTeamId    *dataloader.Definition[string, []*meeting.Meeting]
	ActiveMeetingsByOrgId     *dataloader.Definition[string, []*meeting.Meeting]
	TeamLeadByTeamId          *dataloader.Definition[string, *teammember.TeamMember]
}

func New(config Config) (*Loaders, error) {
	l := &Loaders{}
	l.definePrimary(config)
	l.defineDerived(config)

	table, err := dataloader.NewTable(
		l.Users,
		l.Organizations,
		l.Teams,
		l.TeamMembers,
		l.Meetings,
		l.MeetingMembers,
		l.MeetingTemplates,
		l.TeamsByOrgId,
		l.TeamMembersByTeamId,
		l.TeamMemberByTeamAndUser,
		l.MeetingMembersByMeetingId,
		l.MeetingTemplatesByTeamId,
		l.ActiveMeetingsByTeamId,
		l.ActiveMeetingsByOrgId,
		l.TeamLeadByTeamId,
	)
	if err != nil {
		return nil, err
	}
	l.table = table

	return l, nil
}

func (l *Loaders) Table() *dataloader.Table {
	return l.table
}

// NewRegistry creates the loader registry of one request.
func (l *Loaders) NewRegistry(ctx context.Context, options dataloader.Options) *dataloader.Registry {
	return l.table.NewRegistry(ctx, options)
}

func (l *Loaders) definePrimary(config Config) {
	l.Users = dataloader.NewPrimary(Users, dataloader.KeyedSource(
		func(ctx context.Context, ids []string) ([]*user.User, error) {
			return config.UserService.FindUsers(ctx, &user.FindOptions{
				Ids: ids,
			})
		},
		func(u *user.User) string { return u.Id },
	))

	l.Organizations = dataloader.NewPrimary(Organizations, dataloader.KeyedSource(
		func(ctx context.Context, ids []string) ([]*organization.Organization, error) {
			return config.OrganizationService.FindOrganizations(ctx, &organization.FindOptions{
				Ids: ids,
			})
		},
		func(o *organization.Organization) string { return o.Id },
	))

	l.Teams = dataloader.NewPrimary(Teams, dataloader.KeyedSource(
		func(ctx context.Context, ids []string) ([]*team.Team, error) {
			return config.TeamService.FindTeams(ctx, &team.FindOptions{
				Ids:          ids,
				WithArchived: true,
			})
		},
		teamId,
	))

	l.TeamMembers = dataloader.NewPrimary(TeamMembers, dataloader.KeyedSource(
		func(ctx context.Context, ids []string) ([]*teammember.TeamMember, error) {
			return config.TeamMemberService.FindTeamMembers(ctx, &teammember.FindOptions{
				Ids:         ids,
				WithRemoved: true,
			})
		},
		teamMemberId,
	))

	l.Meetings = dataloader.NewPrimary(Meetings, config.MeetingSource)

	l.MeetingMembers = dataloader.NewPrimary(MeetingMembers, dataloader.KeyedSource(
		func(ctx context.Context, ids []string) ([]*meetingmember.MeetingMember, error) {
			return config.MeetingMemberService.FindMeetingMembers(ctx, &meetingmember.FindOptions{
				Ids: ids,
			})
		},
		meetingMemberId,
	))

	l.MeetingTemplates = dataloader.NewPrimary(MeetingTemplates, dataloader.KeyedSource(
		func(ctx context.Context, ids []string) ([]*template.MeetingTemplate, error) {
			return config.TemplateService.FindTemplates(ctx, &template.FindOptions{
				Ids:          ids,
				WithInactive: true,
			})
		},
		templateId,
	))
}

func teamId(t *team.Team) string                            { return t.Id }
func teamMemberId(tm *teammember.TeamMember) string          { return tm.Id }
func meetingId(m *meeting.Meeting) string                    { return m.Id }
func meetingMemberId(mm *meetingmember.MeetingMember) string { return mm.Id }
func templateId(t *template.MeetingTemplate) string          { return t.Id }
