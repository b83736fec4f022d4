package meetingmember

import (
	"context"
)

type Repository interface {
	FindAll(ctx context.Context, options *FindOptions) ([]*MeetingMember, error)
	Create(ctx context.Context, meetingMember *MeetingMember) (*MeetingMember, error)
}
