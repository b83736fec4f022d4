package bbolt

import (
	"context"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/user"
)

const (
	userBucket = "user"
)

type userRepository struct {
	db *bbolt.DB
}

func NewUserRepository(db *bbolt.DB) user.Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) FindAll(ctx context.Context, options *user.FindOptions) ([]*user.User, error) {
	return dbView(ctx, r.db, userBucket, func(bucket *bbolt.Bucket) ([]*user.User, error) {
		users, err := findJSON(bucket, options.Ids, func(u *user.User) bool {
			return true
		})
		if err != nil {
			return nil, err
		}

		if len(options.Query) != 0 {
			users = search(users, strings.ToLower(options.Query), func(u *user.User) string {
				return u.Email
			})
		}
		return users, nil
	})
}

func (r *userRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	return dbUpdate(ctx, r.db, userBucket, func(bucket *bbolt.Bucket) (*user.User, error) {
		if bucket.Get([]byte(u.Id)) != nil {
			return nil, user.ErrUserIdAlreadyExists
		}
		return u, putJSON(bucket, u.Id, u)
	})
}

func (r *userRepository) Update(ctx context.Context, u *user.User, fieldMask *user.UpdateFieldMask) (*user.User, error) {
	return dbUpdate(ctx, r.db, userBucket, func(bucket *bbolt.Bucket) (*user.User, error) {
		updatedUser, err := getJSON[user.User](bucket, u.Id)
		if err != nil {
			return nil, err
		}
		if updatedUser == nil {
			return nil, user.ErrUserNotFound
		}

		if fieldMask.PreferredName {
			updatedUser.PreferredName = u.PreferredName
		}

		if fieldMask.TeamIds {
			updatedUser.TeamIds = u.TeamIds
		}

		updatedUser.UpdatedAt = time.Now()
		return updatedUser, putJSON(bucket, updatedUser.Id, updatedUser)
	})
}
