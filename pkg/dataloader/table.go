package dataloader

import (
	"context"
	"fmt"
)

// Table maps loader names to their definitions. It is built once at startup and read-only afterwards.
type Table struct {
	kinds map[LoaderName]Kind
	names []LoaderName
}

func NewTable(kinds ...Kind) (*Table, error) {
	t := &Table{
		kinds: make(map[LoaderName]Kind, len(kinds)),
		names: make([]LoaderName, 0, len(kinds)),
	}

	for _, kind := range kinds {
		if _, ok := t.kinds[kind.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLoader, kind.Name())
		}
		t.kinds[kind.Name()] = kind
		t.names = append(t.names, kind.Name())
	}

	for _, kind := range kinds {
		for _, dependency := range kind.DependsOn() {
			if _, ok := t.kinds[dependency]; !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, kind.Name(), dependency)
			}
		}
	}

	return t, nil
}

func (t *Table) Lookup(name LoaderName) (Kind, bool) {
	kind, ok := t.kinds[name]
	return kind, ok
}

// Names returns the registered loader names in registration order.
func (t *Table) Names() []LoaderName {
	return append([]LoaderName(nil), t.names...)
}

// NewRegistry creates the registry of one request. Batch functions receive ctx.
func (t *Table) NewRegistry(ctx context.Context, options Options) *Registry {
	return newRegistry(ctx, t, options)
}

func (t *Table) has(kind Kind) bool {
	registered, ok := t.kinds[kind.Name()]
	return ok && registered == kind
}

func (t *Table) mustLookup(name LoaderName) Kind {
	kind, ok := t.kinds[name]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownLoader, name))
	}
	return kind
}
