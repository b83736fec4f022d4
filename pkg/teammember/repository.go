package teammember

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*TeamMember, error)
	Create(ctx context.Context, teamMember *TeamMember) (*TeamMember, error)
}
