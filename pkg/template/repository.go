package template

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*MeetingTemplate, error)
	Create(ctx context.Context, template *MeetingTemplate) (*MeetingTemplate, error)
	Deactivate(ctx context.Context, templateIds []string) ([]*MeetingTemplate, error)
}
