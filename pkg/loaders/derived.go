package loaders

import (
	"context"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
)

func (l *Loaders) defineDerived(config Config) {
	l.TeamsByOrgId = dataloader.NewDerived(TeamsByOrgId, []dataloader.LoaderName{Teams},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[string, []*team.Team] {
			teams := dataloader.Get(registry, l.Teams)
			return func(ctx context.Context, orgIds []string) ([][]*team.Team, error) {
				generation := teams.Generation()
				found, err := config.TeamService.FindTeams(ctx, &team.FindOptions{
					OrgIds: orgIds,
				})
				if err != nil {
					return nil, err
				}
				dataloader.PrimeAll(teams, generation, found, teamId)
				return dataloader.GroupByKey(orgIds, found, func(t *team.Team) string { return t.OrgId }), nil
			}
		},
	)

	l.TeamMembersByTeamId = dataloader.NewDerived(TeamMembersByTeamId, []dataloader.LoaderName{TeamMembers},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[string, []*teammember.TeamMember] {
			teamMembers := dataloader.Get(registry, l.TeamMembers)
			return func(ctx context.Context, teamIds []string) ([][]*teammember.TeamMember, error) {
				generation := teamMembers.Generation()
				found, err := config.TeamMemberService.FindTeamMembers(ctx, &teammember.FindOptions{
					TeamIds: teamIds,
				})
				if err != nil {
					return nil, err
				}
				dataloader.PrimeAll(teamMembers, generation, found, teamMemberId)
				return dataloader.GroupByKey(teamIds, found, func(tm *teammember.TeamMember) string { return tm.TeamId }), nil
			}
		},
	)

	l.TeamMemberByTeamAndUser = dataloader.NewDerived(TeamMemberByTeamAndUser, []dataloader.LoaderName{TeamMembers},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[TeamMemberKey, *teammember.TeamMember] {
			teamMembers := dataloader.Get(registry, l.TeamMembers)
			return func(_ context.Context, keys []TeamMemberKey) ([]*teammember.TeamMember, error) {
				ids := make([]string, len(keys))
				for i, key := range keys {
					ids[i] = teammember.Id(key.TeamId, key.UserId)
				}
				members, errs := teamMembers.LoadAll(ids)
				return members, dataloader.ToKeyErrors(errs)
			}
		},
	)

	l.MeetingMembersByMeetingId = dataloader.NewDerived(MeetingMembersByMeetingId, []dataloader.LoaderName{MeetingMembers},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[string, []*meetingmember.MeetingMember] {
			meetingMembers := dataloader.Get(registry, l.MeetingMembers)
			return func(ctx context.Context, meetingIds []string) ([][]*meetingmember.MeetingMember, error) {
				generation := meetingMembers.Generation()
				found, err := config.MeetingMemberService.FindMeetingMembers(ctx, &meetingmember.FindOptions{
					MeetingIds: meetingIds,
				})
				if err != nil {
					return nil, err
				}
				dataloader.PrimeAll(meetingMembers, generation, found, meetingMemberId)
				return dataloader.GroupByKey(meetingIds, found, func(mm *meetingmember.MeetingMember) string { return mm.MeetingId }), nil
			}
		},
	)

	l.MeetingTemplatesByTeamId = dataloader.NewDerived(MeetingTemplatesByTeamId, []dataloader.LoaderName{MeetingTemplates},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[string, []*template.MeetingTemplate] {
			templates := dataloader.Get(registry, l.MeetingTemplates)
			return func(ctx context.Context, teamIds []string) ([][]*template.MeetingTemplate, error) {
				generation := templates.Generation()
				found, err := config.TemplateService.FindTemplates(ctx, &template.FindOptions{
					TeamIds: teamIds,
				})
				if err != nil {
					return nil, err
				}
				dataloader.PrimeAll(templates, generation, found, templateId)
				return dataloader.GroupByKey(teamIds, found, func(t *template.MeetingTemplate) string { return t.TeamId }), nil
			}
		},
	)

	l.ActiveMeetingsByTeamId = dataloader.NewDerived(ActiveMeetingsByTeamId, []dataloader.LoaderName{Meetings},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[string, []*meeting.Meeting] {
			meetings := dataloader.Get(registry, l.Meetings)
			return func(ctx context.Context, teamIds []string) ([][]*meeting.Meeting, error) {
				generation := meetings.Generation()
				found, err := config.MeetingService.FindMeetings(ctx, &meeting.FindOptions{
					TeamIds:    teamIds,
					ActiveOnly: true,
				})
				if err != nil {
					return nil, err
				}
				dataloader.PrimeAll(meetings, generation, found, meetingId)
				return dataloader.GroupByKey(teamIds, found, func(m *meeting.Meeting) string { return m.TeamId }), nil
			}
		},
	)

	l.ActiveMeetingsByOrgId = dataloader.NewDerived(ActiveMeetingsByOrgId, []dataloader.LoaderName{TeamsByOrgId, ActiveMeetingsByTeamId},
		func(registry *dataloader.Registry, _ dataloader.DependsOnFunc) dataloader.BatchFunc[string, []*meeting.Meeting] {
			teamsByOrgId := dataloader.Get(registry, l.TeamsByOrgId)
			activeMeetingsByTeamId := dataloader.Get(registry, l.ActiveMeetingsByTeamId)
			return func(_ context.Context, orgIds []string) ([][]*meeting.Meeting, error) {
				teamsPerOrg, errs := teamsByOrgId.LoadAll(orgIds)

				var teamIds []string
				for _, orgTeams := range teamsPerOrg {
					for _, t := range orgTeams {
						teamIds = append(teamIds, t.Id)
					}
				}

				meetingsPerTeam, meetingErrs := activeMeetingsByTeamId.LoadAll(teamIds)
				meetingsByTeamId := make(map[string][]*meeting.Meeting, len(teamIds))
				errsByTeamId := make(map[string]error)
				for i, id := range teamIds {
					meetingsByTeamId[id] = meetingsPerTeam[i]
					if meetingErrs[i] != nil {
						errsByTeamId[id] = meetingErrs[i]
					}
				}

				result := make([][]*meeting.Meeting, len(orgIds))
				for i, orgTeams := range teamsPerOrg {
					for _, t := range orgTeams {
						if err, ok := errsByTeamId[t.Id]; ok && errs[i] == nil {
							errs[i] = err
						}
						result[i] = append(result[i], meetingsByTeamId[t.Id]...)
					}
				}
				return result, dataloader.ToKeyErrors(errs)
			}
		},
	)

	// the lead is picked among the current members, so it only follows teamMembersByTeamId
	l.TeamLeadByTeamId = dataloader.NewDerived(TeamLeadByTeamId, nil,
		func(registry *dataloader.Registry, dependsOn dataloader.DependsOnFunc) dataloader.BatchFunc[string, *teammember.TeamMember] {
			dependsOn(TeamMembersByTeamId)
			teamMembersByTeamId := dataloader.Get(registry, l.TeamMembersByTeamId)
			return func(_ context.Context, teamIds []string) ([]*teammember.TeamMember, error) {
				membersPerTeam, errs := teamMembersByTeamId.LoadAll(teamIds)
				leads := make([]*teammember.TeamMember, len(teamIds))
				for i, members := range membersPerTeam {
					for _, member := range members {
						if member.IsLead {
							leads[i] = member
							break
						}
					}
				}
				return leads, dataloader.ToKeyErrors(errs)
			}
		},
	)
}
