package dataloader

import (
	"context"
	"errors"
	"fmt"

	dataloaden "github.com/UnAfraid/dataloaden/v2/dataloader"
)

// BatchFunc fetches the values of distinct keys in one storage round-trip. The returned values must
// be aligned with keys, absent entities are represented by the zero value of V.
// A KeyErrors result fails only the keys it reports, any other error fails the whole batch.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, error)

// DependsOnFunc declares that the loader being constructed must be cleared whenever one of names is.
type DependsOnFunc func(names ...LoaderName)

// Factory builds the batch function of a derived loader. The registry lets it compose other loaders,
// dependsOn records which loaders its values are derived from. Factories run while the registry
// constructs and must not load data themselves, only the returned batch function may.
type Factory[K comparable, V any] func(registry *Registry, dependsOn DependsOnFunc) BatchFunc[K, V]

// Instance is the untyped view of a constructed loader.
type Instance interface {
	Name() LoaderName
	ClearAll()
	Len() int
}

// Kind is an entry of the loader table.
type Kind interface {
	Name() LoaderName
	Primary() bool
	DependsOn() []LoaderName
	instantiate(registry *Registry, dependsOn DependsOnFunc) Instance
}

// KeyErrors are positional per-key failures of one batch.
type KeyErrors []error

func (e KeyErrors) Error() string {
	return errors.Join(e...).Error()
}

// Definition describes how to construct the loader of one kind. Its type parameters bind the key
// and value types to the loader name.
type Definition[K comparable, V any] struct {
	name      LoaderName
	primary   bool
	dependsOn []LoaderName
	factory   Factory[K, V]
}

// NewPrimary defines a loader keyed by entity identity and backed by source.
func NewPrimary[K comparable, V any](name LoaderName, source Source[K, V]) *Definition[K, V] {
	return &Definition[K, V]{
		name:    name,
		primary: true,
		factory: func(*Registry, DependsOnFunc) BatchFunc[K, V] {
			return source.Fetch
		},
	}
}

// NewDerived defines a loader whose values are derived from other loaders. dependsOn is declared on
// every construction, the factory may declare more.
func NewDerived[K comparable, V any](name LoaderName, dependsOn []LoaderName, factory Factory[K, V]) *Definition[K, V] {
	return &Definition[K, V]{
		name:      name,
		dependsOn: dependsOn,
		factory:   factory,
	}
}

func (d *Definition[K, V]) Name() LoaderName {
	return d.name
}

func (d *Definition[K, V]) Primary() bool {
	return d.primary
}

func (d *Definition[K, V]) DependsOn() []LoaderName {
	return d.dependsOn
}

func (d *Definition[K, V]) instantiate(registry *Registry, dependsOn DependsOnFunc) Instance {
	if len(d.dependsOn) != 0 {
		dependsOn(d.dependsOn...)
	}

	batchFn := d.factory(registry, dependsOn)
	ctx := registry.Context()
	options := registry.state.options

	return NewLoader(d.name, dataloaden.Config[K, V]{
		Fetch: func(keys []K) ([]V, []error) {
			values, err := batchFn(ctx, keys)
			if err == nil {
				return values, nil
			}

			var keyErrs KeyErrors
			if errors.As(err, &keyErrs) && len(keyErrs) == len(keys) {
				return values, keyErrs
			}
			return nil, []error{fmt.Errorf("failed to load %s: %w", d.name, err)}
		},
		Wait:     options.Wait,
		MaxBatch: options.MaxBatch,
	}, options.Observer)
}
