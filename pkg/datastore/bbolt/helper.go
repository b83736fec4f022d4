package bbolt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twelvedata/searchindex"
	"go.etcd.io/bbolt"
	"golang.org/x/exp/slices"

	"github.com/UnAfraid/teamboard/pkg/dbx"
)

// dbView reads bucketName within the transaction of ctx, or a read-only one. A missing bucket
// yields the zero result.
func dbView[T any](ctx context.Context, db *bbolt.DB, bucketName string, callback func(*bbolt.Bucket) (T, error)) (T, error) {
	return dbx.InBBoltReadScope(ctx, db, func(tx *bbolt.Tx) (result T, err error) {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return result, nil
		}
		return callback(bucket)
	})
}

func dbUpdate[T any](ctx context.Context, db *bbolt.DB, bucketName string, callback func(*bbolt.Bucket) (T, error)) (T, error) {
	return dbx.InBBoltTransactionScopeWithResult(ctx, db, func(ctx context.Context, tx *bbolt.Tx) (result T, err error) {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return result, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
		return callback(bucket)
	})
}

func getJSON[T any](bucket *bbolt.Bucket, id string) (*T, error) {
	jsonState := bucket.Get([]byte(id))
	if jsonState == nil {
		return nil, nil
	}

	var value *T
	if err := json.Unmarshal(jsonState, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", id, err)
	}
	return value, nil
}

func putJSON[T any](bucket *bbolt.Bucket, id string, value *T) error {
	jsonState, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", id, err)
	}
	return bucket.Put([]byte(id), jsonState)
}

// findJSON returns the documents accepted by match. With ids only those keys are read, in ids
// order, missing ones skipped; otherwise the bucket is scanned.
func findJSON[T any](bucket *bbolt.Bucket, ids []string, match func(*T) bool) ([]*T, error) {
	var values []*T
	if len(ids) != 0 {
		for _, id := range ids {
			value, err := getJSON[T](bucket, id)
			if err != nil {
				return nil, err
			}
			if value != nil && match(value) {
				values = append(values, value)
			}
		}
		return values, nil
	}

	err := bucket.ForEach(func(k, v []byte) error {
		var value *T
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", k, err)
		}
		if match(value) {
			values = append(values, value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// search ranks values whose key begins with query.
func search[T any](values []*T, query string, keyFn func(*T) string) []*T {
	if len(values) == 0 {
		return nil
	}

	searchList := make(searchindex.SearchList, 0, len(values))
	for _, value := range values {
		searchList = append(searchList, &searchindex.SearchItem{
			Key:  keyFn(value),
			Data: value,
		})
	}

	searchIndex := searchindex.NewSearchIndex(searchList, len(values), nil, nil, true, nil)
	matches := searchIndex.Search(searchindex.SearchParams{
		Text:       query,
		OutputSize: len(values),
		Matching:   searchindex.Beginning,
	})

	results := make([]*T, 0, len(matches))
	for _, match := range matches {
		results = append(results, match.(*T))
	}
	return results
}

// anyOf reports whether value passes filter, an empty filter passes everything.
func anyOf(filter []string, value string) bool {
	return len(filter) == 0 || slices.Contains(filter, value)
}
