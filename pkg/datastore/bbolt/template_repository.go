package bbolt

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/template"
)

const (
	templateBucket = "meeting_template"
)

type templateRepository struct {
	db *bbolt.DB
}

func NewTemplateRepository(db *bbolt.DB) template.Repository {
	return &templateRepository{
		db: db,
	}
}

func (r *templateRepository) FindAll(ctx context.Context, options *template.FindOptions) ([]*template.MeetingTemplate, error) {
	return dbView(ctx, r.db, templateBucket, func(bucket *bbolt.Bucket) ([]*template.MeetingTemplate, error) {
		return findJSON(bucket, options.Ids, func(t *template.MeetingTemplate) bool {
			if !t.IsActive && !options.WithInactive {
				return false
			}
			return anyOf(options.TeamIds, t.TeamId)
		})
	})
}

func (r *templateRepository) Create(ctx context.Context, t *template.MeetingTemplate) (*template.MeetingTemplate, error) {
	return dbUpdate(ctx, r.db, templateBucket, func(bucket *bbolt.Bucket) (*template.MeetingTemplate, error) {
		if bucket.Get([]byte(t.Id)) != nil {
			return nil, template.ErrTemplateIdAlreadyExists
		}
		return t, putJSON(bucket, t.Id, t)
	})
}

func (r *templateRepository) Deactivate(ctx context.Context, templateIds []string) ([]*template.MeetingTemplate, error) {
	return dbUpdate(ctx, r.db, templateBucket, func(bucket *bbolt.Bucket) ([]*template.MeetingTemplate, error) {
		now := time.Now()
		deactivated := make([]*template.MeetingTemplate, 0, len(templateIds))
		for _, templateId := range templateIds {
			t, err := getJSON[template.MeetingTemplate](bucket, templateId)
			if err != nil {
				return nil, err
			}
			if t == nil {
				return nil, template.ErrTemplateNotFound
			}

			t.IsActive = false
			t.UpdatedAt = now
			if err := putJSON(bucket, t.Id, t); err != nil {
				return nil, err
			}
			deactivated = append(deactivated, t)
		}
		return deactivated, nil
	})
}
