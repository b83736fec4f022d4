package manage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/internal/adapt"
	"github.com/UnAfraid/teamboard/pkg/loaders"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/notification"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

// Service runs the mutations spanning several domains. Reads go through the loader registry of
// the request, writes through the domain services inside one transaction.
type Service interface {
	ArchiveTeam(ctx context.Context, viewerId string, teamId string) (*ArchivedTeam, error)
	HideConversionModal(ctx context.Context, viewerId string, orgId string) ([]*meeting.Meeting, error)
	Seed(ctx context.Context) (*SeedResult, error)
}

type ArchivedTeam struct {
	Team                 *team.Team
	RemovedFromUsers     []*user.User
	DeactivatedTemplates []*template.MeetingTemplate
	Notifications        []*notification.Notification
}

type service struct {
	transactionScoper    dbx.TransactionScoper
	loaders              *loaders.Loaders
	userService          user.Service
	organizationService  organization.Service
	teamService          team.Service
	teamMemberService    teammember.Service
	meetingService       meeting.Service
	meetingMemberService meetingmember.Service
	templateService      template.Service
	notificationService  notification.Service
}

func NewService(
	transactionScoper dbx.TransactionScoper,
	loaders *loaders.Loaders,
	userService user.Service,
	organizationService organization.Service,
	teamService team.Service,
	teamMemberService teammember.Service,
	meetingService meeting.Service,
	meetingMemberService meetingmember.Service,
	templateService template.Service,
	notificationService notification.Service,
) Service {
	return &service{
		transactionScoper:    transactionScoper,
		loaders:              loaders,
		userService:          userService,
		organizationService:  organizationService,
		teamService:          teamService,
		teamMemberService:    teamMemberService,
		meetingService:       meetingService,
		meetingMemberService: meetingMemberService,
		templateService:      templateService,
		notificationService:  notificationService,
	}
}

func (s *service) ArchiveTeam(ctx context.Context, viewerId string, teamId string) (*ArchivedTeam, error) {
	if len(viewerId) == 0 {
		return nil, ErrViewerRequired
	}

	registry, err := dataloader.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	t, err := dataloader.LoadNonNull(dataloader.Get(registry, s.loaders.Teams), teamId)
	if err != nil {
		return nil, err
	}
	if t.IsArchived {
		return nil, team.ErrTeamAlreadyArchived
	}

	if err := s.authorizeTeamLeadOrOrgAdmin(registry, viewerId, t); err != nil {
		return nil, err
	}

	var (
		members   []*teammember.TeamMember
		templates []*template.MeetingTemplate
		g         errgroup.Group
	)
	g.Go(func() (err error) {
		members, err = dataloader.Get(registry, s.loaders.TeamMembersByTeamId).Load(teamId)
		return err
	})
	g.Go(func() (err error) {
		templates, err = dataloader.Get(registry, s.loaders.MeetingTemplatesByTeamId).Load(teamId)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIds := adapt.Array(members, func(tm *teammember.TeamMember) string { return tm.UserId })
	templateIds := adapt.Array(templates, func(mt *template.MeetingTemplate) string { return mt.Id })

	return dbx.InTransactionScopeWithResult(ctx, s.transactionScoper, func(ctx context.Context) (*ArchivedTeam, error) {
		archivedTeam, err := s.teamService.ArchiveTeam(ctx, teamId)
		if err != nil {
			return nil, err
		}

		users, err := s.userService.RemoveTeam(ctx, userIds, teamId)
		if err != nil {
			return nil, err
		}

		deactivatedTemplates, err := s.templateService.DeactivateTemplates(ctx, templateIds)
		if err != nil {
			return nil, err
		}

		notifications, err := s.notificationService.NotifyTeamArchived(ctx, &notification.TeamArchivedOptions{
			UserIds:        userIds,
			TeamId:         teamId,
			ArchivorUserId: viewerId,
		})
		if err != nil {
			return nil, err
		}

		dbx.AfterCommit(ctx, func() {
			registry.Invalidate(loaders.Teams, loaders.Users, loaders.TeamMembers, loaders.MeetingTemplates)
		})

		logrus.
			WithField("teamId", teamId).
			WithField("viewerId", viewerId).
			WithField("members", len(userIds)).
			Info("archived team")

		return &ArchivedTeam{
			Team:                 archivedTeam,
			RemovedFromUsers:     users,
			DeactivatedTemplates: deactivatedTemplates,
			Notifications:        notifications,
		}, nil
	})
}

func (s *service) HideConversionModal(ctx context.Context, viewerId string, orgId string) ([]*meeting.Meeting, error) {
	if len(viewerId) == 0 {
		return nil, ErrViewerRequired
	}

	registry, err := dataloader.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	org, err := dataloader.LoadNonNull(dataloader.Get(registry, s.loaders.Organizations), orgId)
	if err != nil {
		return nil, err
	}
	if !org.IsAdmin(viewerId) {
		return nil, ErrForbidden
	}
	if !org.ShowConversionModal {
		return nil, nil
	}

	teams, err := dataloader.Get(registry, s.loaders.TeamsByOrgId).Load(orgId)
	if err != nil {
		return nil, err
	}

	teamIds := adapt.Array(teams, func(t *team.Team) string { return t.Id })
	meetingsPerTeam, errs := dataloader.Get(registry, s.loaders.ActiveMeetingsByTeamId).LoadAll(teamIds)
	if err := dataloader.CombineErrors(errs); err != nil {
		return nil, err
	}

	meetingIds := adapt.Array(adapt.Flatten(meetingsPerTeam), func(m *meeting.Meeting) string { return m.Id })

	return dbx.InTransactionScopeWithResult(ctx, s.transactionScoper, func(ctx context.Context) ([]*meeting.Meeting, error) {
		if _, err := s.organizationService.UpdateOrganization(ctx, orgId, &organization.UpdateOptions{
			ShowConversionModal: false,
		}, &organization.UpdateFieldMask{
			ShowConversionModal: true,
		}); err != nil {
			return nil, err
		}

		updatedMeetings, err := s.meetingService.SetShowConversionModal(ctx, meetingIds, false)
		if err != nil {
			return nil, err
		}

		dbx.AfterCommit(ctx, func() {
			registry.Invalidate(loaders.Organizations, loaders.Meetings)
		})

		return updatedMeetings, nil
	})
}

func (s *service) authorizeTeamLeadOrOrgAdmin(registry *dataloader.Registry, viewerId string, t *team.Team) error {
	var (
		member *teammember.TeamMember
		org    *organization.Organization
		g      errgroup.Group
	)
	g.Go(func() (err error) {
		member, err = dataloader.Get(registry, s.loaders.TeamMemberByTeamAndUser).Load(loaders.TeamMemberKey{
			TeamId: t.Id,
			UserId: viewerId,
		})
		return err
	})
	g.Go(func() (err error) {
		org, err = dataloader.Get(registry, s.loaders.Organizations).Load(t.OrgId)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to authorize viewer: %w", err)
	}

	if member != nil && member.IsNotRemoved && member.IsLead {
		return nil
	}
	if org != nil && org.IsAdmin(viewerId) {
		return nil
	}
	return ErrForbidden
}
