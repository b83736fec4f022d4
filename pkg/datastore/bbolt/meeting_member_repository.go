package bbolt

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/meetingmember"
)

const (
	meetingMemberBucket = "meeting_member"
)

type meetingMemberRepository struct {
	db *bbolt.DB
}

func NewMeetingMemberRepository(db *bbolt.DB) meetingmember.Repository {
	return &meetingMemberRepository{
		db: db,
	}
}

func (r *meetingMemberRepository) FindAll(ctx context.Context, options *meetingmember.FindOptions) ([]*meetingmember.MeetingMember, error) {
	return dbView(ctx, r.db, meetingMemberBucket, func(bucket *bbolt.Bucket) ([]*meetingmember.MeetingMember, error) {
		return findJSON(bucket, options.Ids, func(mm *meetingmember.MeetingMember) bool {
			return anyOf(options.MeetingIds, mm.MeetingId)
		})
	})
}

func (r *meetingMemberRepository) Create(ctx context.Context, mm *meetingmember.MeetingMember) (*meetingmember.MeetingMember, error) {
	return dbUpdate(ctx, r.db, meetingMemberBucket, func(bucket *bbolt.Bucket) (*meetingmember.MeetingMember, error) {
		if bucket.Get([]byte(mm.Id)) != nil {
			return nil, meetingmember.ErrMeetingMemberExists
		}
		return mm, putJSON(bucket, mm.Id, mm)
	})
}
