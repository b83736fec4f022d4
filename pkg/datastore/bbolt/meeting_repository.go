package bbolt

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/meeting"
)

// MeetingTable is the legacy table meetings are stored in.
const MeetingTable = "NewMeeting"

type meetingRepository struct {
	db *bbolt.DB
}

func NewMeetingRepository(db *bbolt.DB) meeting.Repository {
	return &meetingRepository{
		db: db,
	}
}

func (r *meetingRepository) FindAll(ctx context.Context, options *meeting.FindOptions) ([]*meeting.Meeting, error) {
	return dbView(ctx, r.db, MeetingTable, func(bucket *bbolt.Bucket) ([]*meeting.Meeting, error) {
		return findJSON(bucket, options.Ids, func(m *meeting.Meeting) bool {
			if options.ActiveOnly && !m.IsActive() {
				return false
			}
			return anyOf(options.TeamIds, m.TeamId)
		})
	})
}

func (r *meetingRepository) Create(ctx context.Context, m *meeting.Meeting) (*meeting.Meeting, error) {
	return dbUpdate(ctx, r.db, MeetingTable, func(bucket *bbolt.Bucket) (*meeting.Meeting, error) {
		if bucket.Get([]byte(m.Id)) != nil {
			return nil, meeting.ErrMeetingIdAlreadyExists
		}
		return m, putJSON(bucket, m.Id, m)
	})
}

func (r *meetingRepository) Update(ctx context.Context, m *meeting.Meeting, fieldMask *meeting.UpdateFieldMask) (*meeting.Meeting, error) {
	return dbUpdate(ctx, r.db, MeetingTable, func(bucket *bbolt.Bucket) (*meeting.Meeting, error) {
		updatedMeeting, err := getJSON[meeting.Meeting](bucket, m.Id)
		if err != nil {
			return nil, err
		}
		if updatedMeeting == nil {
			return nil, meeting.ErrMeetingNotFound
		}

		updatedMeeting.Update(&meeting.UpdateOptions{
			ShowConversionModal: m.ShowConversionModal,
			EndedAt:             m.EndedAt,
		}, fieldMask)
		updatedMeeting.UpdatedAt = time.Now()
		return updatedMeeting, putJSON(bucket, updatedMeeting.Id, updatedMeeting)
	})
}
