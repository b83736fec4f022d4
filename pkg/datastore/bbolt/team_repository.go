package bbolt

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/team"
)

const (
	teamBucket = "team"
)

type teamRepository struct {
	db *bbolt.DB
}

func NewTeamRepository(db *bbolt.DB) team.Repository {
	return &teamRepository{
		db: db,
	}
}

func (r *teamRepository) FindAll(ctx context.Context, options *team.FindOptions) ([]*team.Team, error) {
	return dbView(ctx, r.db, teamBucket, func(bucket *bbolt.Bucket) ([]*team.Team, error) {
		teams, err := findJSON(bucket, options.Ids, func(t *team.Team) bool {
			if t.IsArchived && !options.WithArchived {
				return false
			}
			return anyOf(options.OrgIds, t.OrgId)
		})
		if err != nil {
			return nil, err
		}

		if len(options.Query) != 0 {
			teams = search(teams, options.Query, func(t *team.Team) string {
				return t.Name
			})
		}
		return teams, nil
	})
}

func (r *teamRepository) Create(ctx context.Context, t *team.Team) (*team.Team, error) {
	return dbUpdate(ctx, r.db, teamBucket, func(bucket *bbolt.Bucket) (*team.Team, error) {
		if bucket.Get([]byte(t.Id)) != nil {
			return nil, team.ErrTeamIdAlreadyExists
		}
		return t, putJSON(bucket, t.Id, t)
	})
}

func (r *teamRepository) Archive(ctx context.Context, teamId string) (*team.Team, error) {
	return dbUpdate(ctx, r.db, teamBucket, func(bucket *bbolt.Bucket) (*team.Team, error) {
		archivedTeam, err := getJSON[team.Team](bucket, teamId)
		if err != nil {
			return nil, err
		}
		if archivedTeam == nil {
			return nil, team.ErrTeamNotFound
		}
		if archivedTeam.IsArchived {
			return nil, nil
		}

		archivedTeam.IsArchived = true
		archivedTeam.UpdatedAt = time.Now()
		return archivedTeam, putJSON(bucket, archivedTeam.Id, archivedTeam)
	})
}
