package bbolt

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/teammember"
)

const (
	teamMemberBucket = "team_member"
)

type teamMemberRepository struct {
	db *bbolt.DB
}

func NewTeamMemberRepository(db *bbolt.DB) teammember.Repository {
	return &teamMemberRepository{
		db: db,
	}
}

func (r *teamMemberRepository) FindAll(ctx context.Context, options *teammember.FindOptions) ([]*teammember.TeamMember, error) {
	return dbView(ctx, r.db, teamMemberBucket, func(bucket *bbolt.Bucket) ([]*teammember.TeamMember, error) {
		return findJSON(bucket, options.Ids, func(tm *teammember.TeamMember) bool {
			if !tm.IsNotRemoved && !options.WithRemoved {
				return false
			}
			return anyOf(options.TeamIds, tm.TeamId) && anyOf(options.UserIds, tm.UserId)
		})
	})
}

func (r *teamMemberRepository) Create(ctx context.Context, tm *teammember.TeamMember) (*teammember.TeamMember, error) {
	return dbUpdate(ctx, r.db, teamMemberBucket, func(bucket *bbolt.Bucket) (*teammember.TeamMember, error) {
		if bucket.Get([]byte(tm.Id)) != nil {
			return nil, teammember.ErrTeamMemberExists
		}
		return tm, putJSON(bucket, tm.Id, tm)
	})
}
