package bbolt

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/UnAfraid/teamboard/pkg/dataloader"
)

type legacyTableSource[V any] struct {
	db    *bbolt.DB
	table string
}

// NewLegacyTableSource reads documents of table by primary key, bypassing the domain service.
// Keys without a document resolve to nil.
func NewLegacyTableSource[V any](db *bbolt.DB, table string) dataloader.Source[string, *V] {
	return &legacyTableSource[V]{
		db:    db,
		table: table,
	}
}

func (s *legacyTableSource[V]) Fetch(ctx context.Context, keys []string) ([]*V, error) {
	values, err := dbView(ctx, s.db, s.table, func(bucket *bbolt.Bucket) ([]*V, error) {
		values := make([]*V, len(keys))
		for i, key := range keys {
			value, err := getJSON[V](bucket, key)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.table, err)
	}
	if values == nil {
		// the table does not exist yet
		values = make([]*V, len(keys))
	}
	return values, nil
}
