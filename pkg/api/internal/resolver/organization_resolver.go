package resolver

import (
	"context"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/UnAfraid/teamboard/pkg/api/internal/model"
	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/internal/adapt"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/user"
)

func (r *Resolver) OrganizationTeams(ctx context.Context, viewerId string, orgId string) (*model.OrganizationTeams, error) {
	registry, err := dataloader.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	var (
		org    *organization.Organization
		viewer *user.User
		teams  []*team.Team
		g      errgroup.Group
	)
	g.Go(func() (err error) {
		org, err = dataloader.LoadNonNull(dataloader.Get(registry, r.loaders.Organizations), orgId)
		return err
	})
	g.Go(func() (err error) {
		viewer, err = dataloader.Get(registry, r.loaders.Users).Load(viewerId)
		return err
	})
	g.Go(func() (err error) {
		teams, err = dataloader.Get(registry, r.loaders.TeamsByOrgId).Load(orgId)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !org.IsAdmin(viewerId) && !inAnyTeam(viewer, teams) {
		return nil, ErrNotTeamMember
	}

	result := &model.OrganizationTeams{
		Organization: model.ToOrganization(org),
		Teams:        make([]*model.TeamView, len(teams)),
	}

	var (
		fanOut   errgroup.Group
		errs     fieldErrors
		teamErrs = make([]fieldErrors, len(teams))
	)
	for i, t := range teams {
		result.Teams[i] = r.teamView(&fanOut, &teamErrs[i], registry, t)
	}
	resolveField(&fanOut, &errs, "activeMeetings", func() error {
		meetings, err := dataloader.Get(registry, r.loaders.ActiveMeetingsByOrgId).Load(orgId)
		result.ActiveMeetings = adapt.Array(meetings, model.ToMeeting)
		return err
	})
	_ = fanOut.Wait()

	for i, teamView := range result.Teams {
		teamView.Errors = teamErrs[i].result()
	}
	result.Errors = errs.result()
	return result, nil
}

func inAnyTeam(viewer *user.User, teams []*team.Team) bool {
	if viewer == nil {
		return false
	}
	for _, t := range teams {
		if slices.Contains(viewer.TeamIds, t.Id) {
			return true
		}
	}
	return false
}
