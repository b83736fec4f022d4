package team

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*Team, error)
	Create(ctx context.Context, team *Team) (*Team, error)
	// Archive marks the team archived and returns it, nil when it already was.
	Archive(ctx context.Context, teamId string) (*Team, error)
}
