package organization

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*Organization, error)
	Create(ctx context.Context, organization *Organization) (*Organization, error)
	Update(ctx context.Context, organization *Organization, fieldMask *UpdateFieldMask) (*Organization, error)
}
