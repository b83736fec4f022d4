package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/UnAfraid/teamboard/pkg/api/internal/model"
	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/internal/adapt"
	"github.com/UnAfraid/teamboard/pkg/team"
)

func (r *Resolver) Team(ctx context.Context, viewerId string, teamId string) (*model.TeamView, error) {
	registry, err := dataloader.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	t, err := dataloader.LoadNonNull(dataloader.Get(registry, r.loaders.Teams), teamId)
	if err != nil {
		return nil, err
	}

	if err := r.authorizeTeamMember(registry, viewerId, t.Id, t.OrgId); err != nil {
		return nil, err
	}

	var (
		g    errgroup.Group
		errs fieldErrors
	)
	view := r.teamView(&g, &errs, registry, t)
	resolveField(&g, &errs, "meetingTemplates", func() error {
		templates, err := dataloader.Get(registry, r.loaders.MeetingTemplatesByTeamId).Load(t.Id)
		view.MeetingTemplates = adapt.Array(templates, model.ToMeetingTemplate)
		return err
	})
	resolveField(&g, &errs, "activeMeetings", func() error {
		meetings, err := dataloader.Get(registry, r.loaders.ActiveMeetingsByTeamId).Load(t.Id)
		view.ActiveMeetings = adapt.Array(meetings, model.ToMeeting)
		return err
	})
	_ = g.Wait()

	view.Errors = errs.result()
	return view, nil
}

// teamView schedules the members and the lead of t on g. The view is complete once g is done.
func (r *Resolver) teamView(g *errgroup.Group, errs *fieldErrors, registry *dataloader.Registry, t *team.Team) *model.TeamView {
	view := &model.TeamView{
		Team: model.ToTeam(t),
	}

	resolveField(g, errs, "members", func() error {
		members, err := dataloader.Get(registry, r.loaders.TeamMembersByTeamId).Load(t.Id)
		view.Members = adapt.Array(members, model.ToTeamMember)
		return err
	})
	resolveField(g, errs, "lead", func() error {
		lead, err := dataloader.Get(registry, r.loaders.TeamLeadByTeamId).Load(t.Id)
		view.Lead = model.ToTeamMember(lead)
		return err
	})

	return view
}
