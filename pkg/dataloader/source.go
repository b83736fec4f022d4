package dataloader

import (
	"context"
)

// Source is the storage capability behind a primary loader.
type Source[K comparable, V any] interface {
	Fetch(ctx context.Context, keys []K) ([]V, error)
}

type SourceFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, error)

func (f SourceFunc[K, V]) Fetch(ctx context.Context, keys []K) ([]V, error) {
	return f(ctx, keys)
}

// KeyedSource fetches with find, which may return values in any order and omit missing ones, and
// realigns the result with the requested keys.
func KeyedSource[K comparable, V any](find func(ctx context.Context, keys []K) ([]V, error), keyFn func(V) K) Source[K, V] {
	return SourceFunc[K, V](func(ctx context.Context, keys []K) ([]V, error) {
		values, err := find(ctx, keys)
		if err != nil {
			return nil, err
		}
		return AlignByKey(keys, values, keyFn), nil
	})
}
