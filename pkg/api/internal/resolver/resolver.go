package resolver

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
	"github.com/UnAfraid/teamboard/pkg/loaders"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/teammember"
)

var ErrNotTeamMember = errors.New("viewer is not a member of the team")

// Resolver assembles API views from the loaders of the request registry. Independent fields are
// resolved on their own goroutines so their keys end up in the same batches.
type Resolver struct {
	loaders *loaders.Loaders
}

func NewResolver(loaders *loaders.Loaders) *Resolver {
	return &Resolver{
		loaders: loaders,
	}
}

// authorizeTeamMember allows current members of teamId and admins of its organization.
func (r *Resolver) authorizeTeamMember(registry *dataloader.Registry, viewerId string, teamId string, orgId string) error {
	var (
		member *teammember.TeamMember
		org    *organization.Organization
		g      errgroup.Group
	)
	g.Go(func() (err error) {
		member, err = dataloader.Get(registry, r.loaders.TeamMemberByTeamAndUser).Load(loaders.TeamMemberKey{
			TeamId: teamId,
			UserId: viewerId,
		})
		return err
	})
	g.Go(func() (err error) {
		org, err = dataloader.Get(registry, r.loaders.Organizations).Load(orgId)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if member != nil && member.IsNotRemoved {
		return nil
	}
	if org != nil && org.IsAdmin(viewerId) {
		return nil
	}
	return ErrNotTeamMember
}
