package manage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

// SeedResult holds the demo data created by Seed. Users are ordered lead of the first team,
// lead of the second team, then a plain member of the second team.
type SeedResult struct {
	Organization *organization.Organization
	Users        []*user.User
	Teams        []*team.Team
	Meetings     []*meeting.Meeting
}

type seedMember struct {
	user   int
	isLead bool
}

type seedTeam struct {
	name        string
	members     []seedMember
	meetingName string
	meetingType string
}

var (
	seedUsers = []*user.CreateOptions{
		{Email: "alice@example.com", PreferredName: "Alice"},
		{Email: "bob@example.com", PreferredName: "Bob"},
		{Email: "carol@example.com", PreferredName: "Carol"},
	}

	seedTeams = []seedTeam{
		{
			name:        "Platform",
			members:     []seedMember{{user: 0, isLead: true}, {user: 1}},
			meetingName: "Sprint retro",
			meetingType: meeting.TypeRetrospective,
		},
		{
			name:        "Payments",
			members:     []seedMember{{user: 1, isLead: true}, {user: 2}},
			meetingName: "Estimation",
			meetingType: meeting.TypePoker,
		},
	}
)

func (s *service) Seed(ctx context.Context) (*SeedResult, error) {
	result, err := dbx.InTransactionScopeWithResult(ctx, s.transactionScoper, func(ctx context.Context) (*SeedResult, error) {
		organizations, err := s.organizationService.FindOrganizations(ctx, &organization.FindOptions{})
		if err != nil {
			return nil, err
		}
		if len(organizations) != 0 {
			return nil, ErrAlreadySeeded
		}

		result := &SeedResult{}

		for _, options := range seedUsers {
			u, err := s.userService.CreateUser(ctx, options)
			if err != nil {
				return nil, fmt.Errorf("failed to seed user %s: %w", options.Email, err)
			}
			result.Users = append(result.Users, u)
		}

		org, err := s.organizationService.CreateOrganization(ctx, &organization.CreateOptions{
			Name:                "Acme",
			AdminUserIds:        []string{result.Users[0].Id},
			ShowConversionModal: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed organization: %w", err)
		}
		result.Organization = org

		teamIdsByUser := make([][]string, len(result.Users))
		for _, st := range seedTeams {
			t, m, err := s.seedTeam(ctx, org, result.Users, st)
			if err != nil {
				return nil, err
			}
			result.Teams = append(result.Teams, t)
			result.Meetings = append(result.Meetings, m)
			for _, member := range st.members {
				teamIdsByUser[member.user] = append(teamIdsByUser[member.user], t.Id)
			}
		}

		for i, u := range result.Users {
			updatedUser, err := s.userService.UpdateUser(ctx, u.Id, &user.UpdateOptions{
				TeamIds: teamIdsByUser[i],
			}, &user.UpdateFieldMask{
				TeamIds: true,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to seed teams of user %s: %w", u.Email, err)
			}
			result.Users[i] = updatedUser
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	logrus.
		WithField("orgId", result.Organization.Id).
		WithField("teams", len(result.Teams)).
		Info("seeded demo data")

	return result, nil
}

func (s *service) seedTeam(ctx context.Context, org *organization.Organization, users []*user.User, st seedTeam) (*team.Team, *meeting.Meeting, error) {
	t, err := s.teamService.CreateTeam(ctx, &team.CreateOptions{
		OrgId: org.Id,
		Name:  st.name,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed team %s: %w", st.name, err)
	}

	var leadUserId string
	for _, member := range st.members {
		u := users[member.user]
		if _, err := s.teamMemberService.CreateTeamMember(ctx, &teammember.CreateOptions{
			TeamId:        t.Id,
			UserId:        u.Id,
			PreferredName: u.PreferredName,
			IsLead:        member.isLead,
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed member of team %s: %w", st.name, err)
		}
		if member.isLead {
			leadUserId = u.Id
		}
	}

	if _, err := s.templateService.CreateTemplate(ctx, &template.CreateOptions{
		TeamId:      t.Id,
		OrgId:       org.Id,
		Name:        st.name + " " + st.meetingType,
		MeetingType: st.meetingType,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to seed template of team %s: %w", st.name, err)
	}

	m, err := s.meetingService.CreateMeeting(ctx, &meeting.CreateOptions{
		TeamId:              t.Id,
		Name:                st.meetingName,
		MeetingType:         st.meetingType,
		CreatedBy:           leadUserId,
		FacilitatorUserId:   leadUserId,
		ShowConversionModal: org.ShowConversionModal,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed meeting of team %s: %w", st.name, err)
	}

	for _, member := range st.members {
		if _, err := s.meetingMemberService.CreateMeetingMember(ctx, &meetingmember.CreateOptions{
			MeetingId:   m.Id,
			TeamId:      t.Id,
			UserId:      users[member.user].Id,
			IsCheckedIn: member.isLead,
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed meeting member of team %s: %w", st.name, err)
		}
	}

	return t, m, nil
}
