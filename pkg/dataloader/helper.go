package dataloader

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// AlignByKey orders values by keys. Keys without a value get the zero value of V.
func AlignByKey[K comparable, V any](keys []K, values []V, keyFn func(V) K) []V {
	valuesByKey := make(map[K]V, len(values))
	for _, value := range values {
		valuesByKey[keyFn(value)] = value
	}

	result := make([]V, len(keys))
	for i, key := range keys {
		result[i] = valuesByKey[key]
	}
	return result
}

// GroupByKey buckets values by keyFn and returns one group per key, in key order.
func GroupByKey[K comparable, V any](keys []K, values []V, keyFn func(V) K) [][]V {
	groups := make(map[K][]V, len(keys))
	for _, value := range values {
		key := keyFn(value)
		groups[key] = append(groups[key], value)
	}

	result := make([][]V, len(keys))
	for i, key := range keys {
		result[i] = groups[key]
	}
	return result
}

// LoadNonNull loads key and fails with ErrNotFound when the entity does not exist.
func LoadNonNull[K comparable, V any](loader *Loader[K, *V], key K) (*V, error) {
	value, err := loader.Load(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("%w: %s %v", ErrNotFound, loader.Name(), key)
	}
	return value, nil
}

// CombineErrors folds the positional errors of LoadAll into one error, nil when every key succeeded.
func CombineErrors(errs []error) error {
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// ToKeyErrors turns the positional errors of LoadAll into a batch function error that fails only
// the affected keys. It returns nil when every key succeeded.
func ToKeyErrors(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return KeyErrors(errs)
		}
	}
	return nil
}

// PrimeAll primes loader with values under keyFn. Keys that are already memoized keep their entry.
// Nothing is primed when loader was cleared after generation was read, since values may predate the clear.
func PrimeAll[K comparable, V any](loader *Loader[K, V], generation uint64, values []V, keyFn func(V) K) {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	if loader.generation != generation {
		return
	}
	for _, value := range values {
		loader.unsafePrime(keyFn(value), value)
	}
}
