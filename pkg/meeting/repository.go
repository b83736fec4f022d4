package meeting

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*Meeting, error)
	Create(ctx context.Context, meeting *Meeting) (*Meeting, error)
	Update(ctx context.Context, meeting *Meeting, fieldMask *UpdateFieldMask) (*Meeting, error)
}
