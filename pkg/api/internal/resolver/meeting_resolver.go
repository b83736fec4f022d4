package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/UnAfraid/teamboard/pkg/api/internal/model"
	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/internal/adapt"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/teammember"
)

func (r *Resolver) Meeting(ctx context.Context, viewerId string, meetingId string) (*model.MeetingView, error) {
	registry, err := dataloader.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	m, err := dataloader.LoadNonNull(dataloader.Get(registry, r.loaders.Meetings), meetingId)
	if err != nil {
		return nil, err
	}

	t, err := dataloader.LoadNonNull(dataloader.Get(registry, r.loaders.Teams), m.TeamId)
	if err != nil {
		return nil, err
	}

	if err := r.authorizeTeamMember(registry, viewerId, t.Id, t.OrgId); err != nil {
		return nil, err
	}

	view := &model.MeetingView{
		Meeting: model.ToMeeting(m),
		Team:    model.ToTeam(t),
	}

	var (
		g    errgroup.Group
		errs fieldErrors
	)
	resolveField(&g, &errs, "createdByUser", func() error {
		createdByUser, err := dataloader.Get(registry, r.loaders.Users).Load(m.CreatedBy)
		view.CreatedByUser = model.ToUser(createdByUser)
		return err
	})
	resolveField(&g, &errs, "facilitator", func() error {
		facilitator, err := dataloader.Get(registry, r.loaders.TeamMembers).Load(teammember.Id(m.TeamId, m.FacilitatorUserId))
		view.Facilitator = model.ToTeamMember(facilitator)
		return err
	})
	resolveField(&g, &errs, "meetingMembers", func() error {
		meetingMembers, err := dataloader.Get(registry, r.loaders.MeetingMembersByMeetingId).Load(m.Id)
		view.MeetingMembers = adapt.Array(meetingMembers, model.ToMeetingMember)
		return err
	})
	resolveField(&g, &errs, "organization", func() error {
		org, err := dataloader.Get(registry, r.loaders.Organizations).Load(t.OrgId)
		view.Organization = model.ToOrganization(org)
		return err
	})
	resolveField(&g, &errs, "viewerMeetingMember", func() error {
		viewerMeetingMember, err := dataloader.Get(registry, r.loaders.MeetingMembers).Load(meetingmember.Id(m.Id, viewerId))
		view.ViewerMeetingMember = model.ToMeetingMember(viewerMeetingMember)
		return err
	})
	_ = g.Wait()

	view.Errors = errs.result()
	return view, nil
}
