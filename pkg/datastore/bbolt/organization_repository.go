package bbolt

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/organization"
)

const (
	organizationBucket = "organization"
)

type organizationRepository struct {
	db *bbolt.DB
}

func NewOrganizationRepository(db *bbolt.DB) organization.Repository {
	return &organizationRepository{
		db: db,
	}
}

func (r *organizationRepository) FindAll(ctx context.Context, options *organization.FindOptions) ([]*organization.Organization, error) {
	return dbView(ctx, r.db, organizationBucket, func(bucket *bbolt.Bucket) ([]*organization.Organization, error) {
		return findJSON(bucket, options.Ids, func(o *organization.Organization) bool {
			return true
		})
	})
}

func (r *organizationRepository) Create(ctx context.Context, o *organization.Organization) (*organization.Organization, error) {
	return dbUpdate(ctx, r.db, organizationBucket, func(bucket *bbolt.Bucket) (*organization.Organization, error) {
		if bucket.Get([]byte(o.Id)) != nil {
			return nil, organization.ErrOrganizationIdAlreadyExists
		}
		return o, putJSON(bucket, o.Id, o)
	})
}

func (r *organizationRepository) Update(ctx context.Context, o *organization.Organization, fieldMask *organization.UpdateFieldMask) (*organization.Organization, error) {
	return dbUpdate(ctx, r.db, organizationBucket, func(bucket *bbolt.Bucket) (*organization.Organization, error) {
		updatedOrganization, err := getJSON[organization.Organization](bucket, o.Id)
		if err != nil {
			return nil, err
		}
		if updatedOrganization == nil {
			return nil, organization.ErrOrganizationNotFound
		}

		if fieldMask.Name {
			updatedOrganization.Name = o.Name
		}

		if fieldMask.ShowConversionModal {
			updatedOrganization.ShowConversionModal = o.ShowConversionModal
		}

		updatedOrganization.UpdatedAt = time.Now()
		return updatedOrganization, putJSON(bucket, updatedOrganization.Id, updatedOrganization)
	})
}
